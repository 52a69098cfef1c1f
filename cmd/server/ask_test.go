package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorbot-backend/internal/gemini"
	"tutorbot-backend/internal/models"
	"tutorbot-backend/internal/services"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (gemini.Reply, error) {
	f.prompt = prompt
	return gemini.Reply{Text: f.reply}, f.err
}

func runAskWith(t *testing.T, gen *fakeGenerator, req models.ChatRequest) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := ask(context.Background(), cmd, services.NewTutorService(nil, gen, nil), req)
	return out.String(), err
}

func TestAsk_PrintsReply(t *testing.T) {
	gen := &fakeGenerator{reply: "Two plus two is four! 🎉"}

	out, err := runAskWith(t, gen, models.ChatRequest{Message: "what is 2+2", Subject: "Math", Grade: 1})
	require.NoError(t, err)
	assert.Equal(t, "Two plus two is four! 🎉\n", out)
	assert.Contains(t, gen.prompt, "math tutor for a Grade 1 student")
}

func TestAsk_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		msg  string
		want string
	}{
		{"empty", &fakeGenerator{}, "  ", "Please type a question.\n"},
		{"unsafe", &fakeGenerator{}, "tell me about drugs", services.UnsafeReply + "\n"},
		{"upstream", &fakeGenerator{err: errors.New("dial tcp: refused")}, "why", "❌ Error contacting Gemini API: dial tcp: refused\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runAskWith(t, tc.gen, models.ChatRequest{Message: tc.msg})
			assert.ErrorIs(t, err, errAskFailed)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["ask"])
}

package safety

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilter_Check(t *testing.T) {
	Convey("Check flags blocked terms as case-insensitive substrings", t, func() {
		filter := Default()

		Convey("plain questions pass", func() {
			v := filter.Check("How do plants make food?")
			So(v.Allowed, ShouldBeTrue)
			So(v.MatchedTerm, ShouldBeEmpty)
		})

		Convey("empty text passes", func() {
			So(filter.Check("").Allowed, ShouldBeTrue)
			So(filter.Check("   ").Allowed, ShouldBeTrue)
		})

		Convey("every blocked term is rejected in any case", func() {
			for _, term := range BlockedWords {
				for _, text := range []string{term, "what is a " + term + "?", "ABC " + strings.ToUpper(term) + " XYZ"} {
					v := filter.Check(text)
					So(v.Allowed, ShouldBeFalse)
					So(v.MatchedTerm, ShouldEqual, term)
				}
			}
		})

		Convey("terms embedded in longer words are rejected", func() {
			v := filter.Check("unbombable")
			So(v.Allowed, ShouldBeFalse)
			So(v.MatchedTerm, ShouldEqual, "bomb")

			So(filter.Check("BOMB").Allowed, ShouldBeFalse)
			So(filter.Check("skills").Allowed, ShouldBeFalse)
		})

		Convey("the first match follows blocklist order", func() {
			v := filter.Check("drugs and a bomb")
			So(v.MatchedTerm, ShouldEqual, "bomb")

			v = filter.Check("terror weapon")
			So(v.MatchedTerm, ShouldEqual, "weapon")
		})
	})
}

func TestFilter_New(t *testing.T) {
	Convey("New extends the built-in blocklist", t, func() {
		filter := New(" Poison ", "", "BOMB", "poison")

		Convey("extra terms are normalized and deduplicated", func() {
			terms := filter.Terms()
			So(len(terms), ShouldEqual, len(BlockedWords)+1)
			So(terms[len(terms)-1], ShouldEqual, "poison")
		})

		Convey("extra terms are enforced", func() {
			v := filter.Check("Is this POISONOUS?")
			So(v.Allowed, ShouldBeFalse)
			So(v.MatchedTerm, ShouldEqual, "poison")
		})

		Convey("Terms returns a copy", func() {
			terms := filter.Terms()
			terms[0] = "changed"
			So(filter.Terms()[0], ShouldEqual, "bomb")
		})
	})
}

package features_test

import (
	"errors"
	"testing"

	"github.com/okian/parcast/internal/domain/features"
	. "github.com/smartystreets/goconvey/convey"
)

func mustTemplate(cols ...string) features.Template {
	t, err := features.NewTemplate(cols)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewTemplate(t *testing.T) {
	Convey("Given a list of columns", t, func() {
		Convey("When the list is empty", func() {
			_, err := features.NewTemplate(nil)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, features.ErrInvalidTemplate), ShouldBeTrue)
			})
		})

		Convey("When a column repeats", func() {
			_, err := features.NewTemplate([]string{"Hour", "Bar_A", "Hour"})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, features.ErrInvalidTemplate), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "duplicate column \"Hour\"")
			})
		})

		Convey("When a column is blank", func() {
			_, err := features.NewTemplate([]string{"Hour", "  "})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, features.ErrInvalidTemplate), ShouldBeTrue)
			})
		})

		Convey("When the caller mutates its slice after construction", func() {
			cols := []string{"Hour", "Month"}
			tmpl, err := features.NewTemplate(cols)
			cols[0] = "changed"

			Convey("Then the template keeps its own copy", func() {
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, []string{"Hour", "Month"})
			})
		})
	})
}

func TestExtractOptions(t *testing.T) {
	Convey("Given a template with all three families", t, func() {
		tmpl := mustTemplate("Opening Balance (ml)", "Bar_Main", "Bar_Roof", "Brand_Absolut", "Alcohol_Vodka", "Alcohol_Gin", "Brandy")

		Convey("When extracting per family", func() {
			opts := tmpl.Options()

			Convey("Then each family lists stripped names in template order", func() {
				So(opts.Bars, ShouldResemble, []string{"Main", "Roof"})
				So(opts.Brands, ShouldResemble, []string{"Absolut"})
				So(opts.Alcohols, ShouldResemble, []string{"Vodka", "Gin"})
			})
		})

		Convey("When no column has the prefix", func() {
			got := features.ExtractOptions(tmpl, "Venue_")

			Convey("Then the result is empty but not nil", func() {
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the prefix is a column name itself", func() {
			got := features.ExtractOptions(mustTemplate("Bar_", "Bar_A"), features.PrefixBar)

			Convey("Then the bare prefix yields an empty option", func() {
				So(got, ShouldResemble, []string{"", "A"})
			})
		})
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given the reference scenario template", t, func() {
		tmpl := mustTemplate("OpeningBalance", "DayOfWeek", "Bar_A", "Bar_B", "Brand_X", "Alcohol_Vodka")
		in := features.Input{Bar: "B", Brand: "X", Alcohol: "Vodka", OpeningBalance: 500, DayOfWeek: 2}

		Convey("When assembling", func() {
			row := features.Assemble(in, tmpl)

			Convey("Then columns match the template exactly", func() {
				So(row.Columns(), ShouldResemble, tmpl.Columns())
			})

			Convey("And values follow the inputs and selections", func() {
				So(row.Values(), ShouldResemble, []float64{500, 2, 0, 1, 1, 1})
			})

			Convey("And nothing was zero-filled", func() {
				So(row.Defaulted(), ShouldBeEmpty)
			})
		})

		Convey("When assembling twice", func() {
			Convey("Then both rows are identical", func() {
				So(features.Assemble(in, tmpl).Equal(features.Assemble(in, tmpl)), ShouldBeTrue)
			})
		})
	})

	Convey("Given the full training template", t, func() {
		tmpl := mustTemplate(
			"Opening Balance (ml)", "Purchase (ml)", "Closing Balance (ml)",
			"DayOfWeek", "Month", "Hour", "lag_1", "lag_2", "roll_3",
			"Bar_Main", "Bar_Roof", "Brand_Absolut", "Brand_Smirnoff", "Alcohol_Vodka", "Alcohol_Gin",
			"IsHoliday",
		)
		in := features.Input{
			Bar: "Roof", Brand: "Smirnoff", Alcohol: "Gin",
			OpeningBalance: 1000, Purchase: 250, ClosingBalance: 900,
			DayOfWeek: 5, Month: 12, Hour: 22,
			Lag1: 310, Lag2: 280, Roll3: 295.5,
		}

		Convey("When assembling", func() {
			row := features.Assemble(in, tmpl)
			m := row.Map()

			Convey("Then every numeric field lands under its column", func() {
				So(m["Opening Balance (ml)"], ShouldEqual, 1000.0)
				So(m["Purchase (ml)"], ShouldEqual, 250.0)
				So(m["Closing Balance (ml)"], ShouldEqual, 900.0)
				So(m["DayOfWeek"], ShouldEqual, 5.0)
				So(m["Month"], ShouldEqual, 12.0)
				So(m["Hour"], ShouldEqual, 22.0)
				So(m["lag_1"], ShouldEqual, 310.0)
				So(m["lag_2"], ShouldEqual, 280.0)
				So(m["roll_3"], ShouldEqual, 295.5)
			})

			Convey("And exactly one indicator per family is set", func() {
				for _, fam := range [][]string{
					{"Bar_Main", "Bar_Roof"},
					{"Brand_Absolut", "Brand_Smirnoff"},
					{"Alcohol_Vodka", "Alcohol_Gin"},
				} {
					sum := 0.0
					for _, c := range fam {
						sum += m[c]
					}
					So(sum, ShouldEqual, 1.0)
				}
				So(m["Bar_Roof"], ShouldEqual, 1.0)
				So(m["Brand_Smirnoff"], ShouldEqual, 1.0)
				So(m["Alcohol_Gin"], ShouldEqual, 1.0)
			})

			Convey("And the unknown column is zero-filled and reported", func() {
				So(m["IsHoliday"], ShouldEqual, 0.0)
				So(row.Defaulted(), ShouldResemble, []string{"IsHoliday"})
			})
		})

		Convey("When a selection is not among the options", func() {
			in.Bar = "Basement"
			row := features.Assemble(in, tmpl)

			Convey("Then the whole family is zero", func() {
				v1, _ := row.Get("Bar_Main")
				v2, _ := row.Get("Bar_Roof")
				So(v1, ShouldEqual, 0.0)
				So(v2, ShouldEqual, 0.0)
			})
		})

		Convey("When checking numeric coverage", func() {
			Convey("Then no numeric field is missing", func() {
				So(tmpl.MissingNumeric(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a template lacking numeric columns", t, func() {
		tmpl := mustTemplate("Hour", "Bar_A")

		Convey("Then the missing fields are reported", func() {
			So(tmpl.MissingNumeric(), ShouldResemble, []string{
				"OpeningBalance", "Purchase", "ClosingBalance", "DayOfWeek", "Month", "Lag1", "Lag2", "Roll3",
			})
		})
	})
}

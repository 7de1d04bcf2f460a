package site

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/parcast/internal/domain/features"
)

// view is the data rendered into the form page.
type view struct {
	Options features.Options
	Input   features.Input
	Unit    string
	Result  *result
	Error   string
}

type result struct {
	ID          string
	Predicted   string
	Recommended string
	Defaulted   []string
}

// Days lists day_of_week values with their labels; 0 is Monday.
func (v *view) Days() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

func defaultInput() features.Input {
	return features.Input{Month: 1}
}

// parseInput reads a submitted form. Blank numeric fields are zero.
func parseInput(form url.Values) (features.Input, error) {
	in := defaultInput()
	in.Bar = form.Get("bar")
	in.Brand = form.Get("brand")
	in.Alcohol = form.Get("alcohol")

	floats := []struct {
		name string
		dst  *float64
	}{
		{"opening_balance", &in.OpeningBalance},
		{"purchase", &in.Purchase},
		{"closing_balance", &in.ClosingBalance},
		{"lag_1", &in.Lag1},
		{"lag_2", &in.Lag2},
		{"roll_3", &in.Roll3},
	}
	for _, f := range floats {
		s := strings.TrimSpace(form.Get(f.name))
		if s == "" {
			*f.dst = 0
			continue
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return in, fmt.Errorf("%w: %s must be a number", ErrForm, f.name)
		}
		*f.dst = n
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"day_of_week", &in.DayOfWeek},
		{"month", &in.Month},
		{"hour", &in.Hour},
	}
	for _, f := range ints {
		s := strings.TrimSpace(form.Get(f.name))
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("%w: %s must be a whole number", ErrForm, f.name)
		}
		*f.dst = n
	}
	return in, nil
}

package features

// Input is the raw user entry for a single submission.
// Category selections are checked against template options by the caller.
type Input struct {
	Bar     string `json:"bar"`
	Brand   string `json:"brand"`
	Alcohol string `json:"alcohol"`

	OpeningBalance float64 `json:"opening_balance" validate:"gte=0"`
	Purchase       float64 `json:"purchase" validate:"gte=0"`
	ClosingBalance float64 `json:"closing_balance" validate:"gte=0"`

	DayOfWeek int `json:"day_of_week" validate:"gte=0,lte=6"`
	Month     int `json:"month" validate:"gte=1,lte=12"`
	Hour      int `json:"hour" validate:"gte=0,lte=23"`

	Lag1  float64 `json:"lag_1" validate:"gte=0"`
	Lag2  float64 `json:"lag_2" validate:"gte=0"`
	Roll3 float64 `json:"roll_3" validate:"gte=0"`
}

// numericField binds an Input value to the template columns that carry it.
// The first column is the canonical training name.
type numericField struct {
	name    string
	columns []string
	value   func(Input) float64
}

var numericFields = []numericField{
	{"OpeningBalance", []string{"Opening Balance (ml)", "OpeningBalance"}, func(in Input) float64 { return in.OpeningBalance }},
	{"Purchase", []string{"Purchase (ml)", "Purchase"}, func(in Input) float64 { return in.Purchase }},
	{"ClosingBalance", []string{"Closing Balance (ml)", "ClosingBalance"}, func(in Input) float64 { return in.ClosingBalance }},
	{"DayOfWeek", []string{"DayOfWeek"}, func(in Input) float64 { return float64(in.DayOfWeek) }},
	{"Month", []string{"Month"}, func(in Input) float64 { return float64(in.Month) }},
	{"Hour", []string{"Hour"}, func(in Input) float64 { return float64(in.Hour) }},
	{"Lag1", []string{"lag_1"}, func(in Input) float64 { return in.Lag1 }},
	{"Lag2", []string{"lag_2"}, func(in Input) float64 { return in.Lag2 }},
	{"Roll3", []string{"roll_3"}, func(in Input) float64 { return in.Roll3 }},
}

// numericByColumn maps every known numeric column name to its field.
var numericByColumn = func() map[string]numericField {
	m := make(map[string]numericField)
	for _, f := range numericFields {
		for _, c := range f.columns {
			m[c] = f
		}
	}
	return m
}()

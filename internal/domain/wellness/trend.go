package wellness

import (
	"time"

	"pet-wellness/internal/domain/records"
)

// Period selecciona el rango y la granularidad de la serie de tendencia.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Bucket es una ventana etiquetada de la serie.
type Bucket struct {
	Window Window
	Label  string
}

// Buckets deriva la lista fija de ventanas semiabiertas para un período,
// con bordes en el calendario local de "now":
//   - today: 24 buckets por hora del día en curso
//   - week: 7 buckets diarios terminando hoy
//   - resto (month/year/all): 12 buckets mensuales terminando el mes en curso
//
// Los bordes deben coincidir exactamente con el contrato de FilterWindow
// (inclusivo en Start, exclusivo en End).
func Buckets(period Period, now time.Time) []Bucket {
	loc := now.Location()

	switch period {
	case PeriodToday:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		out := make([]Bucket, 0, 24)
		for h := 0; h < 24; h++ {
			start := day.Add(time.Duration(h) * time.Hour)
			out = append(out, Bucket{
				Window: Window{Start: start, End: start.Add(time.Hour)},
				Label:  start.Format("15:04"),
			})
		}
		return out

	case PeriodWeek:
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		out := make([]Bucket, 0, 7)
		for i := 6; i >= 0; i-- {
			start := today.AddDate(0, 0, -i)
			out = append(out, Bucket{
				Window: Window{Start: start, End: start.AddDate(0, 0, 1)},
				Label:  start.Format("Mon"),
			})
		}
		return out

	default:
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		out := make([]Bucket, 0, 12)
		for i := 11; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			out = append(out, Bucket{
				Window: Window{Start: start, End: start.AddDate(0, 1, 0)},
				Label:  start.Format("Jan"),
			})
		}
		return out
	}
}

// TrendSeries evalúa el historial una vez por bucket y arma la serie para
// graficar. Cada bucket es independiente: mismo historial, distinta ventana.
func (c *Calculator) TrendSeries(h records.History, period Period, species string) []TrendPoint {
	buckets := Buckets(period, c.now())
	out := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		s := c.Score(h, b.Window, species)
		out = append(out, TrendPoint{Label: b.Label, Score: s.Score})
	}
	return out
}

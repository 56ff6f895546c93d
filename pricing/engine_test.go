package pricing

import (
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		in, out  time.Time
		expected int
	}{
		{"three nights", date("2024-05-01"), date("2024-05-04"), 3},
		{"same day", date("2024-05-01"), date("2024-05-01"), 0},
		{"reversed", date("2024-05-04"), date("2024-05-01"), 0},
		{"partial day rounds up", date("2024-05-01"), date("2024-05-02").Add(time.Hour), 2},
		{"zero checkIn", time.Time{}, date("2024-05-02"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.in, tt.out); got != tt.expected {
				t.Errorf("Nights() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	in := QuoteInput{
		RoomID:        "r1",
		RoomName:      "Cabaña",
		PricePerNight: 100,
		CheckIn:       date("2024-05-01"),
		CheckOut:      date("2024-05-04"),
		Services:      []models.ServiceSnapshot{{ID: "s1", Name: "Desayuno", Price: 20}},
	}
	q := Quote(in)
	if q.Nights != 3 || q.LodgingTotal != 300 || q.ServicesTotal != 20 || q.Total != 320 {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if len(q.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(q.Lines))
	}

	in.PricePerNight = 0
	if got := Total(in); got != 0 {
		t.Errorf("Total() with zero price = %d, want 0", got)
	}
}

func TestTotalNeverDecreasesWithNights(t *testing.T) {
	services := []models.ServiceSnapshot{{ID: "svc-1", Name: "Desayuno", Price: 20}}
	tests := []struct {
		name     string
		checkIn  time.Time
		outAfter time.Duration
	}{
		{"whole days", date("2024-05-01"), 0},
		{"afternoon in, morning out", date("2024-05-01").Add(14 * time.Hour), 10 * time.Hour},
		{"late in, noon out", date("2024-05-01").Add(23*time.Hour + 30*time.Minute), 11*time.Hour + 30*time.Minute},
		{"minutes of noise", date("2024-05-01").Add(7 * time.Minute), 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := int64(0)
			prevNights := 0
			for n := 1; n <= 60; n++ {
				in := QuoteInput{
					PricePerNight: 100,
					CheckIn:       tt.checkIn,
					CheckOut:      date("2024-05-01").AddDate(0, 0, n).Add(tt.outAfter),
					Services:      services,
				}
				nights := Nights(in.CheckIn, in.CheckOut)
				got := Total(in)
				if got < prev || nights < prevNights {
					t.Fatalf("day %d: total %d (nights %d) after %d (nights %d)", n, got, nights, prev, prevNights)
				}
				prev, prevNights = got, nights
			}
			if prev == 0 {
				t.Error("sweep never priced a stay")
			}
		})
	}
}

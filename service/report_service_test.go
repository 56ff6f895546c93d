package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

type fakeSnapshotter struct {
	height int
	err    error
	html   string
}

func (f *fakeSnapshotter) Capture(ctx context.Context, html string, widthPx int) (image.Image, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, f.height))
	img.Set(1, 1, color.Black)
	return img, nil
}

func seedPayments(store *memStore) {
	at := func(day int) *time.Time {
		t := time.Date(2024, 5, day, 15, 0, 0, 0, time.UTC)
		return &t
	}
	store.payments["p1"] = models.Payment{ID: "p1", Amount: 100, Method: "card", Status: models.PaymentCompleted, PaidAt: at(1)}
	store.payments["p2"] = models.Payment{ID: "p2", Amount: 80, Method: "cash", Status: models.PaymentCompleted, PaidAt: at(1)}
	store.payments["p3"] = models.Payment{ID: "p3", Amount: 20, Method: "card", Status: models.PaymentPending, PaidAt: at(2)}
}

func newTestReportService(store *memStore, snap SnapshotterInterface) *ReportService {
	return NewReportService(fakePayments{store}, &fakeSettings{}, snap, time.UTC, clock.NewFixed(fixedNow))
}

func TestReportBuild(t *testing.T) {
	store := newMemStore()
	seedPayments(store)
	svc := newTestReportService(store, nil)

	report, meta, err := svc.Build(context.Background(), ReportQuery{From: "2024-05-01", To: "2024-05-31"})
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalRevenue != 200 || report.Count != 3 {
		t.Errorf("total=%v count=%d", report.TotalRevenue, report.Count)
	}
	if len(report.ByMethod) != 2 || report.ByMethod[0].Method != "card" || report.ByMethod[0].Total != 120 {
		t.Errorf("byMethod = %+v", report.ByMethod)
	}
	if len(report.ByDay) != 2 || report.ByDay[0].Day != "2024-05-01" || report.ByDay[0].Total != 180 {
		t.Errorf("byDay = %+v", report.ByDay)
	}
	if meta.CurrencySymbol != "Bs" || !meta.GeneratedAt.Equal(fixedNow) {
		t.Errorf("meta = %+v", meta)
	}

	completed, _, err := svc.Build(context.Background(), ReportQuery{Status: models.PaymentCompleted})
	if err != nil {
		t.Fatal(err)
	}
	if completed.TotalRevenue != 180 {
		t.Errorf("completed revenue = %v", completed.TotalRevenue)
	}
}

func TestReportBuildRejectsBadFilters(t *testing.T) {
	svc := newTestReportService(newMemStore(), nil)
	for _, q := range []ReportQuery{
		{From: "01/05/2024"},
		{From: "2024-05-10", To: "2024-05-01"},
		{Status: "refunded"},
	} {
		if _, _, err := svc.Build(context.Background(), q); !errors.Is(err, models.ErrInvalidFilter) {
			t.Errorf("%+v: got %v", q, err)
		}
	}
}

func TestReportExport(t *testing.T) {
	store := newMemStore()
	seedPayments(store)
	snap := &fakeSnapshotter{height: 2500}
	svc := newTestReportService(store, snap)
	ctx := context.Background()

	for _, mode := range []string{ExportVector, ExportSnapshot} {
		t.Run(mode, func(t *testing.T) {
			data, err := svc.Export(ctx, ReportQuery{}, mode)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Error("not a PDF")
			}
		})
	}
	if snap.html == "" {
		t.Error("snapshotter did not receive the rendered page")
	}
}

func TestReportExportEmptyRange(t *testing.T) {
	svc := newTestReportService(newMemStore(), &fakeSnapshotter{height: 300})
	for _, mode := range []string{ExportVector, ExportSnapshot} {
		data, err := svc.Export(context.Background(), ReportQuery{From: "2030-01-01"}, mode)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("%s: not a PDF", mode)
		}
	}
}

func TestReportExportFailure(t *testing.T) {
	svc := newTestReportService(newMemStore(), &fakeSnapshotter{err: errors.New("chrome crashed")})
	if _, err := svc.Export(context.Background(), ReportQuery{}, ExportSnapshot); !errors.Is(err, models.ErrExportFailed) {
		t.Errorf("got %v", err)
	}

	noBrowser := newTestReportService(newMemStore(), nil)
	if _, err := noBrowser.Export(context.Background(), ReportQuery{}, ExportSnapshot); !errors.Is(err, models.ErrExportFailed) {
		t.Errorf("no browser: got %v", err)
	}
	if _, err := noBrowser.Export(context.Background(), ReportQuery{}, "png"); !errors.Is(err, models.ErrInvalidFilter) {
		t.Errorf("unknown mode: got %v", err)
	}
}

func TestAggregateDocuments(t *testing.T) {
	svc := newTestReportService(newMemStore(), nil)
	report, _ := svc.AggregateDocuments(context.Background(), []map[string]any{
		{"amount": "100", "method": "card", "paidAt": "2024-05-01T10:00:00Z"},
		{"amount": -5, "paidAt": "not a date"},
	})
	if report.TotalRevenue != 100 || report.Count != 2 || report.Undated != 1 {
		t.Errorf("report = %+v", report)
	}
}

package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/ivanoskov/gasto_efectivo/internal/model"
	"github.com/ivanoskov/gasto_efectivo/internal/service"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCategoryPie(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryPie([]service.CategoryTotal{
		{Category: "Comida", Amount: 120.50},
		{Category: "Transporte", Amount: 60},
		{Category: service.Uncategorized, Amount: 19.50},
	})
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestCategoryPieEmpty(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryPie(nil)
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if png != nil {
		t.Error("no data should render nothing")
	}

	png, err = g.CategoryPie([]service.CategoryTotal{{Category: "Comida", Amount: 0}})
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if png != nil {
		t.Error("an all-zero breakdown should render nothing")
	}
}

func TestDailyLine(t *testing.T) {
	g := NewGenerator()

	png, err := g.DailyLine([]service.DailyTotal{
		{Date: model.NewDate(2024, time.March, 1), Amount: 5},
		{Date: model.NewDate(2024, time.March, 2), Amount: 20},
		{Date: model.NewDate(2024, time.March, 5), Amount: 12.5},
	})
	if err != nil {
		t.Fatalf("DailyLine: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestDailyLineTooFewPoints(t *testing.T) {
	g := NewGenerator()

	png, err := g.DailyLine([]service.DailyTotal{
		{Date: model.NewDate(2024, time.March, 1), Amount: 5},
	})
	if err != nil {
		t.Fatalf("DailyLine: %v", err)
	}
	if png != nil {
		t.Error("a single point cannot chart as a line; expect nothing")
	}
}

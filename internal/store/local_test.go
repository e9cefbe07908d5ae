package store

import (
	"os"
	"path/filepath"
	"testing"

	"shopsphere/internal/model"
)

func TestLocalLoad_AbsentFile(t *testing.T) {
	l := Local{Dir: t.TempDir()}
	shops, err := l.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(shops) != 0 {
		t.Fatalf("expected empty collection; got %d shops", len(shops))
	}
}

func TestLocalLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shops.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	l := Local{Dir: dir}
	shops, err := l.Load()
	if err != nil {
		t.Fatalf("parse failures must not propagate; got %v", err)
	}
	if len(shops) != 0 {
		t.Fatalf("expected empty collection on parse failure")
	}
}

func TestLocalSaveLoad_Roundtrip(t *testing.T) {
	l := Local{Dir: t.TempDir()}
	in := []model.Shop{
		{
			ID: "shop-a", Name: "Groceries", Icon: "ShoppingCart", Order: 0,
			Lists: model.Lists{
				Regular: []model.Item{{ID: "item-1", Text: "Milk", Completed: true}},
				OneOff:  []model.Item{{ID: "item-2", Text: "Glue"}},
			},
		},
		{ID: "shop-b", Name: "Hardware", Icon: "Store", Order: 1},
	}

	if err := l.Save(in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	out, err := l.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "shop-a" || out[1].ID != "shop-b" {
		t.Fatalf("roundtrip order mismatch: %+v", out)
	}
	if out[0].Lists.Regular[0].Text != "Milk" || !out[0].Lists.Regular[0].Completed {
		t.Fatalf("item fields lost in roundtrip: %+v", out[0].Lists.Regular)
	}
	if out[0].Lists.OneOff[0].ID != "item-2" {
		t.Fatalf("one-off list lost in roundtrip")
	}
}

func TestLocalSubscribe_DeliversOnce(t *testing.T) {
	l := Local{Dir: t.TempDir()}
	if err := l.Save([]model.Shop{{ID: "shop-a", Name: "A"}}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	calls := 0
	var got []model.Shop
	unsub, err := l.Subscribe("ignored", func(shops []model.Shop) {
		calls++
		got = shops
	})
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	defer unsub()

	if calls != 1 {
		t.Fatalf("expected exactly one delivery; got %d", calls)
	}
	if len(got) != 1 || got[0].ID != "shop-a" {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

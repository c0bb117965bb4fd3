package kb

import (
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

func TestBuiltin_Lookups(t *testing.T) {
	k := Builtin()

	cond, err := k.Condition("type_2_diabetes")
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}
	if cond.Type != domain.DiagnosisMedical {
		t.Errorf("type = %q, want medical", cond.Type)
	}
	if len(cond.Bands["hba1c"]) != 3 {
		t.Errorf("hba1c bands = %d, want 3", len(cond.Bands["hba1c"]))
	}

	if _, err := k.MNTRule("mnt_t2d_carb_control"); err != nil {
		t.Errorf("MNTRule: %v", err)
	}
	if _, err := k.Standard("cereal"); err != nil {
		t.Errorf("Standard: %v", err)
	}
	if _, err := k.Food("chana_whole"); err != nil {
		t.Errorf("Food: %v", err)
	}
	if _, err := k.Dosha("kapha"); err != nil {
		t.Errorf("Dosha: %v", err)
	}
}

func TestKB_LookupMiss(t *testing.T) {
	k := Builtin()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"condition", func() error { _, err := k.Condition("gout"); return err }(), domain.ErrConditionNotFound.Code},
		{"mnt rule", func() error { _, err := k.MNTRule("mnt_missing"); return err }(), domain.ErrMNTRuleNotFound.Code},
		{"standard", func() error { _, err := k.Standard("seafood"); return err }(), domain.ErrStandardNotFound.Code},
		{"food", func() error { _, err := k.Food("durian"); return err }(), domain.ErrFoodNotFound.Code},
		{"dosha", func() error { _, err := k.Dosha("tridosha"); return err }(), domain.ErrDoshaNotFound.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected lookup miss error, got nil")
			}
			engErr, ok := tt.err.(*domain.EngineError)
			if !ok {
				t.Fatalf("error type = %T, want *domain.EngineError", tt.err)
			}
			if engErr.Code != tt.code {
				t.Errorf("code = %d, want %d", engErr.Code, tt.code)
			}
		})
	}
}

func TestKB_InsertionOrderPreserved(t *testing.T) {
	k := New()
	k.AddFood(domain.FoodRecord{FoodID: "b", ExchangeCategory: "cereal"})
	k.AddFood(domain.FoodRecord{FoodID: "a", ExchangeCategory: "cereal"})
	k.AddFood(domain.FoodRecord{FoodID: "b", ExchangeCategory: "pulse"}) // replace keeps position

	foods := k.Foods()
	if len(foods) != 2 {
		t.Fatalf("len = %d, want 2", len(foods))
	}
	if foods[0].FoodID != "b" || foods[1].FoodID != "a" {
		t.Errorf("order = [%s %s], want [b a]", foods[0].FoodID, foods[1].FoodID)
	}
	if foods[0].ExchangeCategory != "pulse" {
		t.Errorf("replaced record category = %q, want pulse", foods[0].ExchangeCategory)
	}
}

func TestBuiltin_FoodsByCategory(t *testing.T) {
	byCat := Builtin().FoodsByCategory()
	for _, cat := range []string{"cereal", "pulse", "milk", "vegetable_a", "vegetable_b", "fruit", "fat", "nuts_seeds"} {
		if len(byCat[cat]) < 2 {
			t.Errorf("category %q has %d foods, want at least 2", cat, len(byCat[cat]))
		}
	}
}

package kb

import "github.com/kosha-health/ncp-engine/internal/domain"

// Builtin returns a knowledge base seeded with the built-in rule set and
// food catalog. Deployments replace or extend this from the store; the
// built-in data keeps the pipeline runnable out of the box.
func Builtin() *KB {
	k := New()
	seedConditions(k)
	seedMNTRules(k)
	seedStandards(k)
	seedDoshas(k)
	seedFoods(k)
	return k
}

// Band boundaries follow the half-open convention: a value matches when
// min <= value < max. A nil bound is open.
func seedConditions(k *KB) {
	k.AddCondition(domain.ConditionRule{
		ConditionID: "type_2_diabetes",
		Type:        domain.DiagnosisMedical,
		Bands: map[string][]domain.SeverityBand{
			"hba1c": {
				{Level: "mild", Min: domain.Float(6.5), Max: domain.Float(7.0), Unit: "%"},
				{Level: "moderate", Min: domain.Float(7.0), Max: domain.Float(8.5), Unit: "%"},
				{Level: "severe", Min: domain.Float(8.5), Unit: "%"},
			},
			"fasting_glucose": {
				{Level: "mild", Min: domain.Float(126), Max: domain.Float(150), Unit: "mg/dL"},
				{Level: "moderate", Min: domain.Float(150), Max: domain.Float(200), Unit: "mg/dL"},
				{Level: "severe", Min: domain.Float(200), Unit: "mg/dL"},
			},
		},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "prediabetes",
		Type:        domain.DiagnosisMedical,
		Bands: map[string][]domain.SeverityBand{
			"hba1c": {
				{Level: "mild", Min: domain.Float(5.7), Max: domain.Float(6.5), Unit: "%"},
			},
			"fasting_glucose": {
				{Level: "mild", Min: domain.Float(100), Max: domain.Float(126), Unit: "mg/dL"},
			},
		},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "hypertension",
		Type:        domain.DiagnosisMedical,
		Bands: map[string][]domain.SeverityBand{
			"systolic_bp": {
				{Level: "mild", Min: domain.Float(130), Max: domain.Float(140), Unit: "mmHg"},
				{Level: "moderate", Min: domain.Float(140), Max: domain.Float(160), Unit: "mmHg"},
				{Level: "severe", Min: domain.Float(160), Unit: "mmHg"},
			},
		},
	})

	// BMI bands are not meaningful during pregnancy.
	k.AddCondition(domain.ConditionRule{
		ConditionID: "obesity",
		Type:        domain.DiagnosisMedical,
		Bands: map[string][]domain.SeverityBand{
			"bmi": {
				{Level: "mild", Min: domain.Float(30), Max: domain.Float(35), Unit: "kg/m2"},
				{Level: "moderate", Min: domain.Float(35), Max: domain.Float(40), Unit: "kg/m2"},
				{Level: "severe", Min: domain.Float(40), Unit: "kg/m2"},
			},
		},
		Eligibility: domain.Eligibility{ExcludePregnant: true},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "overweight",
		Type:        domain.DiagnosisMedical,
		Bands: map[string][]domain.SeverityBand{
			"bmi": {
				{Level: "mild", Min: domain.Float(25), Max: domain.Float(30), Unit: "kg/m2"},
			},
		},
		Eligibility: domain.Eligibility{ExcludePregnant: true},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "excess_carbohydrate_intake",
		Type:        domain.DiagnosisNutrition,
		Bands: map[string][]domain.SeverityBand{
			"carb_percent": {
				{Level: "mild", Min: domain.Float(55), Max: domain.Float(60), Unit: "%"},
				{Level: "moderate", Min: domain.Float(60), Max: domain.Float(70), Unit: "%"},
				{Level: "severe", Min: domain.Float(70), Unit: "%"},
			},
		},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "inadequate_fiber_intake",
		Type:        domain.DiagnosisNutrition,
		Bands: map[string][]domain.SeverityBand{
			"fiber_g": {
				{Level: "severe", Max: domain.Float(10), Unit: "g"},
				{Level: "moderate", Min: domain.Float(10), Max: domain.Float(15), Unit: "g"},
				{Level: "mild", Min: domain.Float(15), Max: domain.Float(20), Unit: "g"},
			},
		},
	})

	k.AddCondition(domain.ConditionRule{
		ConditionID: "inadequate_protein_intake",
		Type:        domain.DiagnosisNutrition,
		Bands: map[string][]domain.SeverityBand{
			"protein_g_per_kg": {
				{Level: "severe", Max: domain.Float(0.4), Unit: "g/kg"},
				{Level: "moderate", Min: domain.Float(0.4), Max: domain.Float(0.6), Unit: "g/kg"},
				{Level: "mild", Min: domain.Float(0.6), Max: domain.Float(0.8), Unit: "g/kg"},
			},
		},
	})
}

func seedMNTRules(k *KB) {
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_t2d_carb_control",
		Status:    "active",
		Priority:  "critical",
		AppliesTo: []string{"type_2_diabetes"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Max: domain.Float(50)},
		},
		FoodExclusions: []string{"refined_sugar", "sugary_beverages"},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_glycemic_fiber",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"type_2_diabetes", "prediabetes"},
		MicroConstraints: map[string]domain.Bound{
			"fiber_g": {Min: domain.Float(30)},
		},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_excess_carb_cap",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"excess_carbohydrate_intake"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Max: domain.Float(55)},
		},
		FoodExclusions: []string{"refined_sugars"},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_htn_sodium",
		Status:    "active",
		Priority:  "critical",
		AppliesTo: []string{"hypertension"},
		MicroConstraints: map[string]domain.Bound{
			"sodium_mg": {Max: domain.Float(1500)},
		},
		FoodExclusions: []string{"pickled_foods", "papad"},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_obesity_deficit",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"obesity"},
		MacroConstraints: map[string]domain.Bound{
			"calories": {DeficitPercent: domain.Float(20)},
		},
		FoodExclusions: []string{"fried_foods", "refined_sugars"},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_overweight_deficit",
		Status:    "active",
		Priority:  "medium",
		AppliesTo: []string{"overweight"},
		MacroConstraints: map[string]domain.Bound{
			"calories": {DeficitPercent: domain.Float(10)},
		},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_fiber_repletion",
		Status:    "active",
		Priority:  "medium",
		AppliesTo: []string{"inadequate_fiber_intake"},
		MicroConstraints: map[string]domain.Bound{
			"fiber_g": {Min: domain.Float(28)},
		},
	})

	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_protein_repletion",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"inadequate_protein_intake"},
		MacroConstraints: map[string]domain.Bound{
			"protein_percent": {Min: domain.Float(20)},
		},
	})

	// Retired rule kept for audit trails; the status filter must skip it.
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "mnt_t2d_legacy_exchange",
		Status:    "inactive",
		Priority:  "low",
		AppliesTo: []string{"type_2_diabetes"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Max: domain.Float(45)},
		},
	})
}

// Per-exchange values follow the Indian exchange lists.
func seedStandards(k *KB) {
	for _, std := range []domain.ExchangeStandard{
		{Category: "cereal", Calories: 100, ProteinG: 3.0, CarbsG: 20.0, FatG: 0.8},
		{Category: "pulse", Calories: 100, ProteinG: 7.0, CarbsG: 17.0, FatG: 0.7},
		{Category: "milk", Calories: 100, ProteinG: 5.0, CarbsG: 10.0, FatG: 4.0},
		{Category: "paneer", Calories: 100, ProteinG: 8.0, CarbsG: 2.0, FatG: 7.0},
		{Category: "vegetable_a", Calories: 20, ProteinG: 1.0, CarbsG: 3.0, FatG: 0.2},
		{Category: "vegetable_b", Calories: 40, ProteinG: 2.0, CarbsG: 8.0, FatG: 0.2},
		{Category: "fruit", Calories: 40, ProteinG: 0.5, CarbsG: 10.0, FatG: 0.0},
		{Category: "fat", Calories: 45, ProteinG: 0.0, CarbsG: 0.0, FatG: 5.0},
		{Category: "nuts_seeds", Calories: 90, ProteinG: 3.0, CarbsG: 3.0, FatG: 7.0},
		{Category: "egg_whites", Calories: 50, ProteinG: 10.0, CarbsG: 1.0, FatG: 0.3},
		{Category: "jaggery", Calories: 20, ProteinG: 0.0, CarbsG: 5.0, FatG: 0.0},
	} {
		k.AddStandard(std)
	}
}

func seedDoshas(k *KB) {
	k.AddDosha(domain.DoshaProfile{
		Dosha:           "vata",
		Favor:           []string{"ginger", "cinnamon", "cardamom", "cumin"},
		Avoid:           []string{"raw_salads", "cold_beverages"},
		MealTiming:      "regular_meals",
		FoodTemperature: "warm",
		Lifestyle:       []string{"oil_massage", "regular_routine"},
	})
	k.AddDosha(domain.DoshaProfile{
		Dosha:           "pitta",
		Favor:           []string{"coriander", "fennel", "mint"},
		Avoid:           []string{"green_chili", "fried_foods", "sour_fruits"},
		MealTiming:      "regular_meals",
		FoodTemperature: "cool",
		Lifestyle:       []string{"moderate_exercise", "evening_walks"},
	})
	k.AddDosha(domain.DoshaProfile{
		Dosha:           "kapha",
		Favor:           []string{"black_pepper", "turmeric", "mustard_seed"},
		Avoid:           []string{"heavy_dairy", "fried_foods", "refined_sugar"},
		MealTiming:      "light_early_dinner",
		FoodTemperature: "warm",
		Lifestyle:       []string{"vigorous_exercise", "early_rising"},
	})
}

func seedFoods(k *KB) {
	foods := []domain.FoodRecord{
		{
			FoodID:                  "wheat_flour_whole",
			DisplayName:             "Wheat flour, whole (Triticum aestivum)",
			FoodType:                "grain",
			ExchangeCategory:        "cereal",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 341, ProteinG: 12.1, CarbsG: 69.4, FatG: 1.7, FiberG: 11.2, SodiumMG: 2, CalorieDensityKcalPerG: 3.4},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MacroCompliance: map[string]bool{"high_fiber": true},
				MicroCompliance: map[string]bool{"low_sodium": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "wheat_flour_refined",
			DisplayName:             "Wheat flour, refined (Triticum aestivum)",
			FoodType:                "grain",
			ExchangeCategory:        "cereal",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 352, ProteinG: 11.0, CarbsG: 73.9, FatG: 0.9, FiberG: 2.8, SodiumMG: 2, CalorieDensityKcalPerG: 3.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": false},
			},
			Compatibility: map[string]string{"type_2_diabetes": "caution", "obesity": "caution"},
		},
		{
			FoodID:                  "rice_brown",
			DisplayName:             "Rice, brown (Oryza sativa)",
			FoodType:                "grain",
			ExchangeCategory:        "cereal",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 362, ProteinG: 7.5, CarbsG: 76.2, FatG: 2.7, FiberG: 3.6, SodiumMG: 4, CalorieDensityKcalPerG: 3.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": true, "hypertension_safe": true},
				MicroCompliance: map[string]bool{"low_sodium": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe"},
		},
		{
			FoodID:                  "ragi_flour",
			DisplayName:             "Finger millet flour (Eleusine coracana)",
			FoodType:                "grain",
			ExchangeCategory:        "cereal",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 328, ProteinG: 7.3, CarbsG: 72.0, FatG: 1.3, FiberG: 11.5, SodiumMG: 11, CalorieDensityKcalPerG: 3.3},
			MNTProfile: domain.MNTProfile{
				MedicalTags:         map[string]bool{"diabetic_safe": true, "obesity_safe": true},
				MacroCompliance:     map[string]bool{"high_fiber": true},
				PreferredConditions: []string{"type_2_diabetes"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "bread_white",
			DisplayName:             "Bread, white, sliced",
			FoodType:                "processed",
			ExchangeCategory:        "cereal",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 265, ProteinG: 8.9, CarbsG: 49.0, FatG: 3.2, FiberG: 2.7, SodiumMG: 490, CalorieDensityKcalPerG: 2.7},
			MNTProfile: domain.MNTProfile{
				MedicalTags:   map[string]bool{"diabetic_safe": false},
				ExclusionTags: []string{"refined_sugar"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "contraindicated"},
		},
		{
			FoodID:                  "chana_whole",
			DisplayName:             "Bengal gram, whole (Cicer arietinum)",
			FoodType:                "legume",
			ExchangeCategory:        "pulse",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 360, ProteinG: 17.1, CarbsG: 60.9, FatG: 5.3, FiberG: 15.3, SodiumMG: 37, CalorieDensityKcalPerG: 3.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags:         map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MacroCompliance:     map[string]bool{"high_protein": true, "high_fiber": true},
				PreferredConditions: []string{"type_2_diabetes", "obesity"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "moong_dal",
			DisplayName:             "Green gram, split (Vigna radiata)",
			FoodType:                "legume",
			ExchangeCategory:        "pulse",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 348, ProteinG: 24.5, CarbsG: 59.9, FatG: 1.2, FiberG: 8.2, SodiumMG: 28, CalorieDensityKcalPerG: 3.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MacroCompliance: map[string]bool{"high_protein": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "masoor_dal",
			DisplayName:             "Red lentil, split (Lens culinaris)",
			FoodType:                "legume",
			ExchangeCategory:        "pulse",
			ServingSizePerExchangeG: 30,
			Nutrition:               domain.FoodNutrition{Calories: 352, ProteinG: 24.6, CarbsG: 59.0, FatG: 1.1, FiberG: 10.8, SodiumMG: 40, CalorieDensityKcalPerG: 3.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "obesity_safe": true},
				MacroCompliance: map[string]bool{"high_protein": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "milk_toned",
			DisplayName:             "Milk, toned",
			FoodType:                "dairy",
			ExchangeCategory:        "milk",
			ServingSizePerExchangeG: 150,
			Nutrition:               domain.FoodNutrition{Calories: 58, ProteinG: 3.1, CarbsG: 4.7, FatG: 3.0, FiberG: 0, SodiumMG: 45, CalorieDensityKcalPerG: 0.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": true, "hypertension_safe": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe"},
		},
		{
			FoodID:                  "curd_lowfat",
			DisplayName:             "Curd, low fat",
			FoodType:                "dairy",
			ExchangeCategory:        "milk",
			ServingSizePerExchangeG: 150,
			Nutrition:               domain.FoodNutrition{Calories: 60, ProteinG: 4.3, CarbsG: 4.4, FatG: 2.9, FiberG: 0, SodiumMG: 46, CalorieDensityKcalPerG: 0.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "paneer_lowfat",
			DisplayName:             "Paneer, low fat",
			FoodType:                "dairy",
			ExchangeCategory:        "paneer",
			ServingSizePerExchangeG: 40,
			Nutrition:               domain.FoodNutrition{Calories: 158, ProteinG: 18.3, CarbsG: 4.4, FatG: 7.8, FiberG: 0, SodiumMG: 22, CalorieDensityKcalPerG: 1.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "obesity_safe": true},
				MacroCompliance: map[string]bool{"high_protein": true, "low_carb": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "spinach",
			DisplayName:             "Spinach (Spinacia oleracea)",
			FoodType:                "vegetable",
			CookingState:            "raw",
			ExchangeCategory:        "vegetable_a",
			ServingSizePerExchangeG: 100,
			Nutrition:               domain.FoodNutrition{Calories: 24, ProteinG: 2.1, CarbsG: 2.9, FatG: 0.6, FiberG: 2.4, SodiumMG: 74, CalorieDensityKcalPerG: 0.2},
			MNTProfile: domain.MNTProfile{
				MedicalTags:         map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MacroCompliance:     map[string]bool{"low_carb": true},
				PreferredConditions: []string{"obesity"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "fenugreek_leaves",
			DisplayName:             "Fenugreek leaves (Trigonella foenum-graecum)",
			FoodType:                "vegetable",
			CookingState:            "raw",
			ExchangeCategory:        "vegetable_a",
			ServingSizePerExchangeG: 100,
			Nutrition:               domain.FoodNutrition{Calories: 49, ProteinG: 4.4, CarbsG: 6.0, FatG: 0.9, FiberG: 1.1, SodiumMG: 76, CalorieDensityKcalPerG: 0.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags:         map[string]bool{"diabetic_safe": true, "hypertension_safe": true},
				PreferredConditions: []string{"type_2_diabetes"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe"},
		},
		{
			FoodID:                  "bottle_gourd",
			DisplayName:             "Bottle gourd (Lagenaria siceraria)",
			FoodType:                "vegetable",
			ExchangeCategory:        "vegetable_a",
			ServingSizePerExchangeG: 100,
			Nutrition:               domain.FoodNutrition{Calories: 12, ProteinG: 0.2, CarbsG: 2.5, FatG: 0.1, FiberG: 0.6, SodiumMG: 2, CalorieDensityKcalPerG: 0.1},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MicroCompliance: map[string]bool{"low_sodium": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "potato",
			DisplayName:             "Potato (Solanum tuberosum)",
			FoodType:                "vegetable",
			ExchangeCategory:        "vegetable_b",
			ServingSizePerExchangeG: 50,
			Nutrition:               domain.FoodNutrition{Calories: 97, ProteinG: 1.6, CarbsG: 22.6, FatG: 0.1, FiberG: 1.7, SodiumMG: 11, CalorieDensityKcalPerG: 1.0},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": false},
			},
			Compatibility: map[string]string{"type_2_diabetes": "caution", "obesity": "caution"},
		},
		{
			FoodID:                  "carrot",
			DisplayName:             "Carrot (Daucus carota)",
			FoodType:                "vegetable",
			CookingState:            "raw",
			ExchangeCategory:        "vegetable_b",
			ServingSizePerExchangeG: 75,
			Nutrition:               domain.FoodNutrition{Calories: 48, ProteinG: 0.9, CarbsG: 10.6, FatG: 0.2, FiberG: 2.8, SodiumMG: 69, CalorieDensityKcalPerG: 0.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "beetroot",
			DisplayName:             "Beetroot (Beta vulgaris)",
			FoodType:                "vegetable",
			ExchangeCategory:        "vegetable_b",
			ServingSizePerExchangeG: 75,
			Nutrition:               domain.FoodNutrition{Calories: 43, ProteinG: 1.7, CarbsG: 8.8, FatG: 0.1, FiberG: 2.8, SodiumMG: 78, CalorieDensityKcalPerG: 0.4},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": true, "obesity_safe": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "apple",
			DisplayName:             "Apple (Malus domestica)",
			FoodType:                "fruit",
			CookingState:            "raw",
			ExchangeCategory:        "fruit",
			ServingSizePerExchangeG: 80,
			Nutrition:               domain.FoodNutrition{Calories: 59, ProteinG: 0.3, CarbsG: 13.4, FatG: 0.4, FiberG: 2.6, SodiumMG: 1, CalorieDensityKcalPerG: 0.6},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "hypertension_safe": true, "obesity_safe": true},
				MicroCompliance: map[string]bool{"low_sodium": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "guava",
			DisplayName:             "Guava (Psidium guajava)",
			FoodType:                "fruit",
			CookingState:            "raw",
			ExchangeCategory:        "fruit",
			ServingSizePerExchangeG: 80,
			Nutrition:               domain.FoodNutrition{Calories: 51, ProteinG: 0.9, CarbsG: 11.2, FatG: 0.3, FiberG: 5.2, SodiumMG: 4, CalorieDensityKcalPerG: 0.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags:         map[string]bool{"diabetic_safe": true, "obesity_safe": true},
				MacroCompliance:     map[string]bool{"high_fiber": true},
				PreferredConditions: []string{"type_2_diabetes"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "banana_ripe",
			DisplayName:             "Banana, ripe (Musa acuminata)",
			FoodType:                "fruit",
			CookingState:            "raw",
			ExchangeCategory:        "fruit",
			ServingSizePerExchangeG: 60,
			Nutrition:               domain.FoodNutrition{Calories: 116, ProteinG: 1.2, CarbsG: 27.2, FatG: 0.3, FiberG: 2.6, SodiumMG: 1, CalorieDensityKcalPerG: 1.2},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"diabetic_safe": false},
			},
			Compatibility: map[string]string{"type_2_diabetes": "caution"},
		},
		{
			FoodID:                  "ghee",
			DisplayName:             "Ghee, clarified butter",
			FoodType:                "fat",
			ExchangeCategory:        "fat",
			ServingSizePerExchangeG: 5,
			Nutrition:               domain.FoodNutrition{Calories: 900, ProteinG: 0, CarbsG: 0, FatG: 100, FiberG: 0, SodiumMG: 0, CalorieDensityKcalPerG: 9.0},
			MNTProfile:              domain.MNTProfile{},
			Compatibility:           map[string]string{"obesity": "caution"},
		},
		{
			FoodID:                  "mustard_oil",
			DisplayName:             "Mustard oil (Brassica juncea)",
			FoodType:                "fat",
			ExchangeCategory:        "fat",
			ServingSizePerExchangeG: 5,
			Nutrition:               domain.FoodNutrition{Calories: 900, ProteinG: 0, CarbsG: 0, FatG: 100, FiberG: 0, SodiumMG: 0, CalorieDensityKcalPerG: 9.0},
			MNTProfile: domain.MNTProfile{
				MedicalTags: map[string]bool{"cardiac_safe": true},
			},
			Compatibility: map[string]string{"hypertension": "safe"},
		},
		{
			FoodID:                  "almonds",
			DisplayName:             "Almonds (Prunus dulcis)",
			FoodType:                "nuts",
			CookingState:            "raw",
			ExchangeCategory:        "nuts_seeds",
			ServingSizePerExchangeG: 15,
			Nutrition:               domain.FoodNutrition{Calories: 609, ProteinG: 18.4, CarbsG: 21.7, FatG: 58.9, FiberG: 13.0, SodiumMG: 1, CalorieDensityKcalPerG: 6.1},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "hypertension_safe": true},
				MacroCompliance: map[string]bool{"high_protein": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "hypertension": "safe"},
		},
		{
			FoodID:                  "flaxseed",
			DisplayName:             "Flaxseed (Linum usitatissimum)",
			FoodType:                "seeds",
			ExchangeCategory:        "nuts_seeds",
			ServingSizePerExchangeG: 15,
			Nutrition:               domain.FoodNutrition{Calories: 534, ProteinG: 18.3, CarbsG: 28.9, FatG: 42.2, FiberG: 27.3, SodiumMG: 30, CalorieDensityKcalPerG: 5.3},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "cardiac_safe": true},
				MacroCompliance: map[string]bool{"high_fiber": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe"},
		},
		{
			FoodID:                  "egg_white",
			DisplayName:             "Egg white, hen",
			FoodType:                "animal",
			ExchangeCategory:        "egg_whites",
			ServingSizePerExchangeG: 90,
			Nutrition:               domain.FoodNutrition{Calories: 52, ProteinG: 10.9, CarbsG: 0.7, FatG: 0.2, FiberG: 0, SodiumMG: 166, CalorieDensityKcalPerG: 0.5},
			MNTProfile: domain.MNTProfile{
				MedicalTags:     map[string]bool{"diabetic_safe": true, "obesity_safe": true},
				MacroCompliance: map[string]bool{"high_protein": true, "low_carb": true},
			},
			Compatibility: map[string]string{"type_2_diabetes": "safe", "obesity": "safe"},
		},
		{
			FoodID:                  "jaggery",
			DisplayName:             "Jaggery, cane (Saccharum officinarum)",
			FoodType:                "sweetener",
			ExchangeCategory:        "jaggery",
			ServingSizePerExchangeG: 5,
			Nutrition:               domain.FoodNutrition{Calories: 383, ProteinG: 0.4, CarbsG: 85.0, FatG: 0.1, FiberG: 0, SodiumMG: 30, CalorieDensityKcalPerG: 3.8},
			MNTProfile: domain.MNTProfile{
				MedicalTags:   map[string]bool{"diabetic_safe": false},
				ExclusionTags: []string{"refined_sugar"},
			},
			Compatibility: map[string]string{"type_2_diabetes": "contraindicated"},
		},
	}

	for _, f := range foods {
		k.AddFood(f)
	}
}

package assessment

// KnowledgeBase is the static dataset behind the deterministic report and
// chat paths. It is passed in by value so components can be exercised with
// alternate datasets in tests; nothing in this package mutates it.
type KnowledgeBase struct {
	WeeklyGuidance    map[int]WeekGuidance
	Symptoms          map[string]SymptomGuide
	Nutrition         map[int]NutritionGuide
	Exercise          ExerciseGuide
	EmergencySymptoms []string
}

// WeekGuidance describes a milestone week. The table is sparse: only
// milestone weeks have entries, and lookups for other weeks come back empty,
// matching the legacy dataset.
type WeekGuidance struct {
	Trimester int
	Focus     string
	Symptoms  []string
	Advice    string
}

type SymptomGuide struct {
	Causes      []string
	Remedies    []string
	WhenToWorry []string
	TipForWeek  func(week int) string
}

// NutritionGuide is keyed by trimester.
type NutritionGuide struct {
	ExtraCalories int
	Focus         []string
	Foods         []string
	Avoid         []string
}

type ExerciseGuide struct {
	Safe        []string
	Avoid       []string
	ByTrimester map[int]string
}

// GuidanceForWeek returns the milestone entry for the exact week, if any.
func (kb KnowledgeBase) GuidanceForWeek(week int) (WeekGuidance, bool) {
	g, ok := kb.WeeklyGuidance[week]
	return g, ok
}

// DefaultKnowledgeBase reproduces the production dataset.
func DefaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		WeeklyGuidance: map[int]WeekGuidance{
			1:  {Trimester: 1, Focus: "Early pregnancy care", Symptoms: []string{"fatigue", "nausea"}, Advice: "Start prenatal vitamins, avoid alcohol"},
			4:  {Trimester: 1, Focus: "Embryo development", Symptoms: []string{"morning sickness", "breast tenderness"}, Advice: "Eat small frequent meals"},
			8:  {Trimester: 1, Focus: "First prenatal visit", Symptoms: []string{"nausea", "fatigue"}, Advice: "Schedule first doctor visit"},
			12: {Trimester: 1, Focus: "End of first trimester", Symptoms: []string{"nausea improving"}, Advice: "Consider sharing pregnancy news"},
			16: {Trimester: 2, Focus: "Anatomy scan preparation", Symptoms: []string{"energy returning"}, Advice: "Schedule anatomy scan"},
			20: {Trimester: 2, Focus: "Halfway point", Symptoms: []string{"baby movements"}, Advice: "Start feeling baby kicks"},
			24: {Trimester: 2, Focus: "Glucose screening", Symptoms: []string{"back pain"}, Advice: "Glucose tolerance test"},
			28: {Trimester: 3, Focus: "Third trimester begins", Symptoms: []string{"shortness of breath"}, Advice: "More frequent checkups"},
			32: {Trimester: 3, Focus: "Baby growth spurt", Symptoms: []string{"heartburn", "swelling"}, Advice: "Monitor baby movements daily"},
			36: {Trimester: 3, Focus: "Full term approaching", Symptoms: []string{"pelvic pressure"}, Advice: "Prepare hospital bag"},
			40: {Trimester: 3, Focus: "Due date", Symptoms: []string{"contractions"}, Advice: "Watch for labor signs"},
		},
		Symptoms: map[string]SymptomGuide{
			"morning sickness": {
				Causes:      []string{"hormonal changes", "hCG levels"},
				Remedies:    []string{"ginger tea", "small frequent meals", "crackers", "vitamin B6"},
				WhenToWorry: []string{"can't keep fluids down", "weight loss", "dehydration"},
				TipForWeek: func(week int) string {
					if week < 12 {
						return "Very common in first trimester"
					}
					return "Should be improving now"
				},
			},
			"back pain": {
				Causes:      []string{"weight gain", "posture changes", "relaxin hormone"},
				Remedies:    []string{"prenatal yoga", "pregnancy pillow", "warm compress", "proper posture"},
				WhenToWorry: []string{"severe pain", "pain down leg", "numbness"},
				TipForWeek: func(week int) string {
					if week > 20 {
						return "Common as baby grows"
					}
					return "May be early pregnancy symptom"
				},
			},
			"heartburn": {
				Causes:      []string{"progesterone", "uterus pressure on stomach"},
				Remedies:    []string{"small meals", "avoid spicy foods", "sleep elevated", "Tums"},
				WhenToWorry: []string{"severe pain", "can't eat", "vomiting"},
				TipForWeek: func(week int) string {
					if week > 24 {
						return "Very common in third trimester"
					}
					return "May start in second trimester"
				},
			},
		},
		Nutrition: map[int]NutritionGuide{
			1: {
				ExtraCalories: 0,
				Focus:         []string{"folic acid", "iron", "avoiding harmful foods"},
				Foods:         []string{"leafy greens", "citrus fruits", "fortified cereals"},
				Avoid:         []string{"raw fish", "alcohol", "high mercury fish"},
			},
			2: {
				ExtraCalories: 340,
				Focus:         []string{"calcium", "protein", "healthy weight gain"},
				Foods:         []string{"dairy", "lean meat", "whole grains"},
				Avoid:         []string{"unpasteurized cheese", "raw eggs"},
			},
			3: {
				ExtraCalories: 450,
				Focus:         []string{"iron", "calcium", "omega-3"},
				Foods:         []string{"fish", "nuts", "vegetables"},
				Avoid:         []string{"excessive caffeine", "large fish"},
			},
		},
		Exercise: ExerciseGuide{
			Safe:  []string{"walking", "swimming", "prenatal yoga", "stationary bike"},
			Avoid: []string{"contact sports", "lying on back", "hot yoga", "activities with fall risk"},
			ByTrimester: map[int]string{
				1: "Light exercise, listen to body",
				2: "Best time for exercise, energy returns",
				3: "Modify as needed, avoid overheating",
			},
		},
		EmergencySymptoms: []string{
			"severe abdominal pain",
			"heavy bleeding",
			"severe headache with vision changes",
			"difficulty breathing",
			"chest pain",
			"decreased fetal movement after 28 weeks",
			"signs of preterm labor",
			"severe swelling with headache",
		},
	}
}

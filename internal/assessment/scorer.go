package assessment

// Score maps a snapshot to both derived scores. Pure and total: no I/O, no
// errors, identical input yields identical output.
func Score(s HealthSnapshot) Assessment {
	return Assessment{
		HealthScore:    healthScore(s),
		RiskPercentage: riskPercentage(s),
	}
}

// healthScore starts at 100 and subtracts fixed penalties. It only ever
// decreases, so the upper bound needs no clamp.
func healthScore(s HealthSnapshot) int {
	score := 100
	if s.BloodPressure.Systolic > 140 || s.BloodPressure.Diastolic > 90 {
		score -= 20
	}
	if s.BloodSugar > 140 {
		score -= 15
	}
	if moodStressed(s.Mood) {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

// riskPercentage starts at a low base and adds weighted penalties. Blood
// pressure and blood sugar each contribute only their highest matching tier;
// the gestational-week interaction terms are additive on top.
func riskPercentage(s HealthSnapshot) int {
	risk := 10

	switch {
	case s.BloodPressure.Systolic >= 160 || s.BloodPressure.Diastolic >= 100:
		risk += 40 // severe hypertension
	case s.BloodPressure.Systolic >= 140 || s.BloodPressure.Diastolic >= 90:
		risk += 25 // mild hypertension
	case s.BloodPressure.Systolic >= 130 || s.BloodPressure.Diastolic >= 85:
		risk += 10 // elevated
	}

	switch {
	case s.BloodSugar >= 180:
		risk += 30
	case s.BloodSugar >= 140:
		risk += 20
	case s.BloodSugar >= 120:
		risk += 10
	}

	if moodStressed(s.Mood) {
		risk += 15
	} else if moodTired(s.Mood) {
		risk += 5
	}

	if s.Week < 12 && (s.BloodPressure.Systolic > 140 || s.BloodSugar > 140) {
		risk += 10 // early pregnancy complications
	}
	if s.Week > 32 && s.BloodPressure.Systolic > 140 {
		risk += 15 // late pregnancy hypertension
	}

	if risk > 100 {
		risk = 100
	}
	return risk
}

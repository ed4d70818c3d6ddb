package assessment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RecentReport is the slice of a stored daily report the responder consults
// for context-aware asides. The most recent entry comes first.
type RecentReport struct {
	HealthScore int
	Mood        string
	Systolic    int
}

// Responder answers free-text pregnancy questions. AI first when configured,
// otherwise (or on any AI error) a keyword-routed rule engine. Respond never
// fails and never returns an empty answer.
type Responder struct {
	gen   TextGenerator
	kb    KnowledgeBase
	log   *zap.Logger
	rules []chatRule
}

func NewResponder(gen TextGenerator, kb KnowledgeBase, log *zap.Logger) *Responder {
	return &Responder{gen: gen, kb: kb, log: log, rules: chatRules()}
}

// Respond produces an answer for one chat turn along with the path that
// produced it. recent may be empty.
func (r *Responder) Respond(ctx context.Context, message string, p Patient, recent []RecentReport) (string, Source) {
	if r.gen != nil {
		text, err := r.gen.Generate(ctx, buildChatPrompt(p, message))
		if err == nil && strings.TrimSpace(text) != "" {
			return text, SourceAI
		}
		r.log.Warn("ai chat response failed, using rule-based response", zap.Error(err))
	}
	return r.ruleBasedResponse(message, p, recent), SourceFallback
}

func buildChatPrompt(p Patient, message string) string {
	return fmt.Sprintf(`You are Dr. AI, a pregnancy doctor. Give SHORT, simple answers.

Patient: %s, %d weeks pregnant
Question: %q

RULES:
• Keep answer under 100 words
• Use 3-4 bullet points maximum
• Start with "Hi %s!"
• Be direct and helpful
• Add "Call doctor if serious symptoms" at end

Response:`, p.Name, p.Week, message, p.Name)
}

// chatRule pairs a keyword predicate with a response builder. Rules are
// evaluated strictly in slice order and the first match wins; the emergency
// rule sits at index 0 and overrides everything else.
type chatRule struct {
	topic string
	match func(msg string) bool
	build func(c chatContext) string
}

type chatContext struct {
	name      string
	week      int
	trimester int
	kb        KnowledgeBase
	recent    []RecentReport
}

func (c chatContext) latest() (RecentReport, bool) {
	if len(c.recent) == 0 {
		return RecentReport{}, false
	}
	return c.recent[0], true
}

func (r *Responder) ruleBasedResponse(message string, p Patient, recent []RecentReport) string {
	msg := strings.ToLower(message)
	c := chatContext{
		name:      p.Name,
		week:      p.Week,
		trimester: Trimester(p.Week),
		kb:        r.kb,
		recent:    recent,
	}
	for _, rule := range r.rules {
		if rule.match(msg) {
			return rule.build(c)
		}
	}
	return r.defaultResponse(c)
}

func anyOf(terms ...string) func(string) bool {
	return func(m string) bool {
		for _, t := range terms {
			if strings.Contains(m, t) {
				return true
			}
		}
		return false
	}
}

func chatRules() []chatRule {
	return []chatRule{
		{topic: "emergency", match: anyOf("severe pain", "heavy bleeding", "can't breathe", "chest pain", "severe headache"), build: emergencyResponse},
		{topic: "nausea", match: anyOf("nausea", "morning sickness", "vomit", "sick"), build: nauseaResponse},
		{topic: "exercise", match: anyOf("exercise", "workout", "physical activity", "gym"), build: exerciseResponse},
		{topic: "mango", match: anyOf("mango"), build: staticResponse(mangoAnswer)},
		{topic: "banana", match: anyOf("banana"), build: staticResponse(bananaAnswer)},
		{topic: "fish", match: anyOf("fish"), build: staticResponse(fishAnswer)},
		{topic: "cheese", match: anyOf("cheese"), build: staticResponse(cheeseAnswer)},
		{topic: "coffee", match: anyOf("coffee", "caffeine"), build: staticResponse(coffeeAnswer)},
		{topic: "nutrition", match: anyOf("nutrition", "diet", "food", "eat", "vitamin"), build: nutritionResponse},
		{topic: "weight", match: anyOf("weight", "gain", "pounds"), build: staticResponse(weightAnswer)},
		{topic: "sleep", match: anyOf("sleep", "tired", "insomnia"), build: staticResponse(sleepAnswer)},
		{topic: "back pain", match: anyOf("back pain", "backache", "spine"), build: staticResponse(backPainAnswer)},
		{topic: "headache", match: anyOf("headache", "migraine", "head pain"), build: staticResponse(headacheAnswer)},
		{topic: "swelling", match: anyOf("swelling", "edema", "puffy"), build: staticResponse(swellingAnswer)},
		{topic: "fetal movement", match: anyOf("baby movement", "kicks", "fetal movement"), build: staticResponse(movementAnswer)},
		{topic: "contractions", match: anyOf("contraction", "tightening", "cramping"), build: staticResponse(contractionAnswer)},
		{topic: "bleeding", match: anyOf("bleeding", "spotting", "blood"), build: staticResponse(bleedingAnswer)},
		{topic: "medication", match: anyOf("medication", "medicine", "drug", "pill"), build: staticResponse(medicationAnswer)},
		{topic: "anxiety", match: anyOf("worried", "concern", "scared", "anxiety"), build: staticResponse(anxietyAnswer)},
		{topic: "discharge", match: anyOf("discharge", "infection", "itch"), build: staticResponse(dischargeAnswer)},
		{topic: "heartburn", match: anyOf("heartburn", "acid reflux", "indigestion"), build: staticResponse(heartburnAnswer)},
		{topic: "constipation", match: anyOf("constipation", "bowel", "poop"), build: staticResponse(constipationAnswer)},
	}
}

func staticResponse(text string) func(chatContext) string {
	return func(chatContext) string { return text }
}

func emergencyResponse(c chatContext) string {
	return fmt.Sprintf("🚨 %s, this sounds serious. Please go to the hospital right away or call 911. Don't wait - your safety and your baby's safety come first.", c.name)
}

func nauseaResponse(c chatContext) string {
	var b strings.Builder
	tip := "Very common in first trimester"
	if s, ok := c.kb.Symptoms["morning sickness"]; ok && s.TipForWeek != nil {
		tip = s.TipForWeek(c.week)
	}
	fmt.Fprintf(&b, "Hi %s! At %d weeks, %s.\n\n", c.name, c.week, strings.ToLower(tip))
	b.WriteString("What helps:\n• Eat small meals every 2-3 hours\n• Keep crackers by your bed\n• Try ginger tea or ginger candies\n• Sip water slowly throughout the day\n• Avoid strong smells\n\n")
	if latest, ok := c.latest(); ok && strings.EqualFold(latest.Mood, "stressed") {
		b.WriteString("I see you've been feeling stressed lately. This can make nausea worse, so try to rest when you can.\n\n")
	}
	b.WriteString("Call your doctor if:\n• You can't keep water down for 24 hours\n• You're losing weight\n• You feel very weak or dizzy")
	return b.String()
}

func exerciseResponse(c chatContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, exercise is great during pregnancy! At %d weeks: %s\n\n", c.name, c.week, c.kb.Exercise.ByTrimester[c.trimester])
	b.WriteString("Safe exercises for you:\n• Walking (best choice)\n• Swimming\n• Prenatal yoga\n• Stationary bike\n\n")
	switch c.trimester {
	case 1:
		b.WriteString("Since you're in your first trimester, start slowly and listen to your body.\n\n")
	case 2:
		b.WriteString("Great news! Second trimester is the best time for exercise as your energy returns.\n\n")
	default:
		b.WriteString("In your third trimester, modify exercises as needed and avoid getting too hot.\n\n")
	}
	b.WriteString("Avoid:\n• Contact sports\n• Activities where you might fall\n")
	if c.week > 12 {
		b.WriteString("• Lying on your back\n")
	}
	b.WriteString("• Getting too hot\n\n")
	b.WriteString("Stop and call your doctor if you feel:\n• Dizzy or short of breath\n• Chest pain\n• Bleeding\n• Contractions")
	return b.String()
}

func nutritionResponse(c chatContext) string {
	info := c.kb.Nutrition[c.trimester]
	var b strings.Builder
	fmt.Fprintf(&b, "%s, good nutrition is so important at %d weeks!\n\n", c.name, c.week)
	if c.trimester == 1 {
		b.WriteString("Good news - you don't need extra calories yet in your first trimester.\n\n")
	} else {
		fmt.Fprintf(&b, "You need about %d extra calories per day now.\n\n", info.ExtraCalories)
	}
	b.WriteString("Focus on these nutrients:\n")
	for _, n := range info.Focus {
		fmt.Fprintf(&b, "• %s\n", capitalize(n))
	}
	b.WriteString("\nEat plenty of:\n")
	for _, f := range info.Foods {
		fmt.Fprintf(&b, "• %s\n", capitalize(f))
	}
	b.WriteString("\nAvoid:\n")
	for _, a := range info.Avoid {
		fmt.Fprintf(&b, "• %s\n", capitalize(a))
	}
	b.WriteString("\nTake your prenatal vitamins every day!")
	if latest, ok := c.latest(); ok && latest.Systolic > 140 {
		b.WriteString("\n\nI noticed your blood pressure was a bit high recently. Try to limit salt and eat more potassium-rich foods like bananas.")
	}
	return b.String()
}

func (r *Responder) defaultResponse(c chatContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! I'm Dr. AI, and I know you're at %d weeks of pregnancy.\n\n", c.name, c.week)

	if g, ok := c.kb.GuidanceForWeek(c.week); ok {
		if g.Focus != "" {
			fmt.Fprintf(&b, "This week's focus: %s\n", g.Focus)
		}
		if len(g.Symptoms) > 0 {
			fmt.Fprintf(&b, "Common symptoms this week: %s\n", strings.Join(g.Symptoms, ", "))
		}
		if g.Advice != "" {
			fmt.Fprintf(&b, "My advice: %s\n\n", g.Advice)
		}
	}

	b.WriteString("I can help you with:\n• Your pregnancy symptoms\n• What's normal at your stage\n• When to call your doctor\n• Healthy habits for you and baby\n\n")

	if latest, ok := c.latest(); ok {
		b.WriteString("Based on your recent health report:\n")
		switch {
		case latest.HealthScore >= 80:
			fmt.Fprintf(&b, "• Your health score is great (%d/100)!\n", latest.HealthScore)
		case latest.HealthScore >= 60:
			fmt.Fprintf(&b, "• Your health score is good (%d/100), but we can improve it\n", latest.HealthScore)
		default:
			fmt.Fprintf(&b, "• Let's work on improving your health score (%d/100)\n", latest.HealthScore)
		}
		if moodStressed(latest.Mood) {
			fmt.Fprintf(&b, "• I see you've been feeling %s. This is normal, but let's talk about it\n", strings.ToLower(latest.Mood))
		}
		b.WriteString("\n")
	}

	b.WriteString("Remember: This is personalized advice based on your data, but always talk to your own doctor about your specific situation.\n\n")
	b.WriteString("Call your doctor right away if you have:\n• Severe pain\n• Heavy bleeding\n• Severe headaches\n• Trouble breathing\n")
	if c.week >= 28 {
		b.WriteString("• Your baby stops moving\n")
	}
	b.WriteString("\nWhat would you like to know about your pregnancy?")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const mangoAnswer = "Yes! Mangoes are safe and healthy during pregnancy. They're rich in vitamin C, folate, and fiber - all great for you and your baby.\n\nBenefits:\n• High in vitamin C (boosts immunity)\n• Contains folate (prevents birth defects)\n• Good source of fiber (helps with constipation)\n• Natural sugars for energy\n\nJust wash them well before eating and enjoy in moderation as part of a balanced diet."

const bananaAnswer = "Absolutely! Bananas are excellent during pregnancy.\n\nBenefits:\n• Rich in potassium (helps with leg cramps)\n• Contains vitamin B6 (reduces nausea)\n• Good source of fiber\n• Natural energy boost\n\nThey're especially helpful if you have morning sickness or leg cramps."

const fishAnswer = "Fish can be safe during pregnancy, but choose carefully:\n\nSafe fish (2-3 servings per week):\n• Salmon, sardines, anchovies\n• Shrimp, crab, lobster\n• Tilapia, cod, catfish\n\nAvoid:\n• Shark, swordfish, king mackerel\n• Raw fish (sushi, sashimi)\n• High-mercury fish\n\nAlways cook fish thoroughly to 145°F."

const cheeseAnswer = "Most cheese is safe during pregnancy:\n\nSafe cheeses:\n• Hard cheeses (cheddar, swiss, parmesan)\n• Pasteurized soft cheeses\n• Cream cheese, cottage cheese\n• Mozzarella, ricotta\n\nAvoid:\n• Unpasteurized soft cheeses\n• Blue cheese, brie, camembert\n• Queso fresco, feta (unless pasteurized)\n\nAlways check the label for 'pasteurized'."

const coffeeAnswer = "You can have some caffeine, but limit it:\n\nSafe amount:\n• Up to 200mg per day (about 1 cup of coffee)\n• This includes tea, chocolate, and soda\n\nWhy limit caffeine:\n• Too much can increase miscarriage risk\n• Can affect baby's growth\n• May cause sleep problems\n\nTry decaf coffee or herbal teas as alternatives."

const weightAnswer = "Healthy weight gain depends on your pre-pregnancy BMI. Generally: underweight women should gain 28-40 lbs, normal weight 25-35 lbs, overweight 15-25 lbs, and obese women 11-20 lbs. Weight gain should be gradual - about 1-2 lbs per week in 2nd and 3rd trimesters. Sudden weight gain or loss should be evaluated. Focus on nutritious foods rather than 'eating for two' - quality matters more than quantity."

const sleepAnswer = "Sleep disturbances are common during pregnancy due to hormonal changes, physical discomfort, and anxiety. Try sleeping on your left side with a pillow between your knees. Establish a bedtime routine, avoid screens before bed, and keep your room cool and dark. Short naps (20-30 minutes) are fine. If you have severe insomnia, sleep apnea symptoms, or excessive daytime fatigue, we should discuss this further."

const backPainAnswer = "Back pain affects up to 70% of pregnant women due to weight gain, posture changes, and hormone relaxin. Maintain good posture, wear supportive shoes, sleep with pillows for support, and try prenatal yoga or gentle stretching. Apply warm compresses and consider a maternity support belt. Avoid heavy lifting and prolonged standing. If pain is severe, radiates down your leg, or affects daily activities, please schedule an appointment."

const headacheAnswer = "Headaches are common in early pregnancy due to hormonal changes, stress, and fatigue. Stay hydrated, eat regular meals, get adequate sleep, and manage stress. You can use acetaminophen (Tylenol) as directed, but avoid ibuprofen and aspirin. If you experience severe headaches with vision changes, swelling, or high blood pressure after 20 weeks, seek immediate medical attention as this could indicate preeclampsia."

const swellingAnswer = "Mild swelling in feet, ankles, and hands is normal, especially in the third trimester. Elevate your feet when possible, wear comfortable shoes, avoid prolonged standing, and stay hydrated. However, sudden or severe swelling, especially in face and hands, accompanied by headaches or vision changes, could indicate preeclampsia and requires immediate medical evaluation."

const movementAnswer = "Fetal movements are a reassuring sign of your baby's well-being. You'll typically feel first movements between 16-25 weeks. By 28 weeks, movements should be regular. I recommend doing kick counts daily - you should feel at least 10 movements in 2 hours during baby's active periods. Decreased movement, especially after 28 weeks, warrants immediate evaluation. Contact me if you notice significant changes in movement patterns."

const contractionAnswer = "Braxton Hicks contractions (practice contractions) are normal and usually irregular, painless, and stop with position changes. True labor contractions are regular, increase in intensity, and don't stop with movement. Before 37 weeks, regular contractions could indicate preterm labor. Contact me immediately if you have regular contractions before 37 weeks, or if contractions are 5 minutes apart for 1 hour after 37 weeks."

const bleedingAnswer = "Any bleeding during pregnancy should be evaluated. Light spotting in early pregnancy can be normal (implantation bleeding), but heavy bleeding, bleeding with cramping, or bleeding in later pregnancy requires immediate medical attention. Possible causes include placental issues, cervical changes, or preterm labor. Please contact me immediately if you experience any bleeding so we can assess the situation properly."

const medicationAnswer = "Medication safety during pregnancy is crucial. Always consult me before taking any medications, including over-the-counter drugs and supplements. Generally safe: acetaminophen for pain/fever, certain antibiotics if needed. Avoid: ibuprofen, aspirin (except low-dose if prescribed), most herbal supplements. Continue prenatal vitamins and any medications I've specifically prescribed. Never stop prescribed medications without consulting me first."

const anxietyAnswer = "It's completely normal to have concerns during pregnancy - this shows you care about your baby's health. Pregnancy anxiety affects many women. Practice relaxation techniques, stay informed but avoid excessive internet searching, maintain social connections, and don't hesitate to discuss any worries with me. If anxiety significantly impacts your daily life, we can explore additional support options including counseling."

const dischargeAnswer = "Some discharge is normal during pregnancy.\n\nNormal discharge is:\n• Clear or white\n• No strong smell\n• No itching\n\nCall your doctor if you have:\n• Strong fishy smell\n• Yellow or green color\n• Itching or burning\n• Blood in discharge\n\nYeast infections are common during pregnancy and can be treated safely."

const heartburnAnswer = "Heartburn is very common during pregnancy.\n\nTo feel better:\n• Eat smaller meals more often\n• Avoid spicy and fatty foods\n• Don't lie down right after eating\n• Sleep with your head raised\n• Try Tums or Rolaids (they're safe)\n\nCall your doctor if heartburn is very bad or you can't eat."

const constipationAnswer = "Constipation is common during pregnancy.\n\nTo help:\n• Eat more fruits, vegetables, and whole grains\n• Drink lots of water (8-10 glasses daily)\n• Walk every day\n• Try prunes or prune juice\n• Ask your doctor about safe stool softeners\n\nCall your doctor if you haven't had a bowel movement for 3 days."

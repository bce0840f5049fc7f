package inactivity

// fallbackMessages is used whenever batch generation fails, so scheduling
// can always proceed even with the model unreachable. Exactly 10 entries,
// matching the generated batch size.
var fallbackMessages = []Message{
	{Title: "Time to move", Body: "A quick workout today keeps your momentum going. You've got this!"},
	{Title: "Your streak misses you", Body: "Even 15 minutes of movement counts. Ready to jump back in?"},
	{Title: "Hydration check", Body: "Haven't seen a water log in a while. A glass now would do you good."},
	{Title: "Small steps count", Body: "A short walk is still a win. Log it and keep the habit alive."},
	{Title: "Strength fades slowly", Body: "One session this week protects everything you've built so far."},
	{Title: "Fuel up right", Body: "Logging a meal takes ten seconds and keeps your goals in sight."},
	{Title: "Rest is earned", Body: "Recovery matters, but so does showing up. How about a light session?"},
	{Title: "Quick check-in", Body: "How are you feeling today? Your coach is ready when you are."},
	{Title: "Momentum beats motivation", Body: "Start small today and let the habit carry you the rest of the week."},
	{Title: "We saved your spot", Body: "Your next workout is waiting. Open the app and let's plan it together."},
}

// FallbackBatch returns a copy of the static batch so callers can't
// mutate the package-level slice.
func FallbackBatch() []Message {
	out := make([]Message, len(fallbackMessages))
	copy(out, fallbackMessages)
	return out
}

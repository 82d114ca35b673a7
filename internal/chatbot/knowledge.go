package chatbot

// DefaultRules returns the builtin knowledge base consulted when no curated
// FAQ matches. Earlier entries shadow later ones, so greetings and pricing
// stay ahead of the destination-specific answers.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords: []string{"hello", "hi", "hey", "start", "greet"},
			Answer:   "Hello! Welcome to Mir Baba Tour and Travels. I'm your travel assistant. You can ask me about packages, best time to visit, prices, or specific places like Gulmarg and Pahalgam.",
		},
		{
			Keywords: []string{"price", "cost", "rate", "budget", "expensive", "cheap", "package price"},
			Answer:   "Our packages are designed for every budget!\n• Budget Tours: Start from ₹9,999/person.\n• Premium Tours: Start from ₹18,999/person.\n• Luxury Honeymoons: Start from ₹24,999/couple.\n\nTell me your budget or duration, and I can suggest the best option!",
		},
		{
			Keywords: []string{"time", "season", "weather", "month", "when to visit", "best time"},
			Answer:   "Kashmir is beautiful year-round!\n• April-Oct: Pleasant weather, green meadows (Perfect for families).\n• Nov-March: Snowfall, skiing in Gulmarg (Perfect for snow lovers).\n• Tulip Festival: Early April.",
		},
		{
			Keywords: []string{"gulmarg", "gondola", "skiing", "snow"},
			Answer:   "Gulmarg is a winter wonderland!\n• Famous for the Gondola Ride (world's second highest).\n• Best for Skiing & Snowboarding in winter.\n• In summer, it's a lush green meadow perfect for golfing and trekking.",
		},
		{
			Keywords: []string{"pahalgam", "betaab", "aru", "lidder"},
			Answer:   "Pahalgam (Valley of Shepherds) is breathtaking.\n• Visit Betaab Valley, Aru Valley, and Chandanwari.\n• Enjoy River Rafting in the Lidder River.\n• Ideal for relaxing and nature walks.",
		},
		{
			Keywords: []string{"sonmarg", "glacier", "snow point"},
			Answer:   "Sonmarg (Meadow of Gold) is famous for the Thajiwas Glacier where you can find snow even in summer! It's a gateway to Ladakh and offers stunning river views.",
		},
		{
			Keywords: []string{"hotel", "stay", "houseboat", "accommodation"},
			Answer:   "We offer a wide range of stays:\n• Houseboats: Romantic stays on Dal Lake.\n• Hotels: 3-Star to 5-Star Luxury properties.\n• Resorts: Scenic resorts in Gulmarg & Pahalgam.\nAll our properties are verified for hygiene and comfort.",
		},
		{
			Keywords: []string{"contact", "phone", "email", "call", "reach", "number"},
			Answer:   "You can reach us directly:\n📞 Call/WhatsApp: +91 9149559393\n📧 Email: info@mirbabatourandtravels.com\n📍 Office: Srinagar, Kashmir.",
		},
		{
			Keywords: []string{"safety", "safe", "security"},
			Answer:   "Absolutely! Kashmir is one of the safest tourist destinations. We provide 24/7 support, trusted local drivers, and secure hotels to ensure a hassle-free experience for families and couples.",
		},
		{
			Keywords: []string{"food", "eating", "wazwan", "restaurant"},
			Answer:   "Don't miss the traditional Kashmiri Wazwan! We can guide you to the best local restaurants to try Rogan Josh, Yakhni, and Kahwa tea.",
		},
		{
			Keywords: []string{"include", "exclusion", "package include"},
			Answer:   "Our packages typically include:\n✅ Hotel/Houseboat Stay\n✅ Breakfast & Dinner\n✅ Private Cab Transfers\n✅ Shikara Ride\n\nExclusions: Flights, Lunch, and Activity fees (Gondola/Pony).",
		},
	}
}

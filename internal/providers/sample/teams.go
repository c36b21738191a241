package sample

// Rosters for the seasons the sample provider serves, keyed by season id.
// Ratings drive the simulated scorelines; higher is stronger.
var topFlight = map[int][]string{
	2024: {
		"Arsenal", "Aston Villa", "AFC Bournemouth", "Brentford", "Brighton & Hove Albion",
		"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
		"Liverpool", "Luton Town", "Manchester City", "Manchester United", "Newcastle United",
		"Nottingham Forest", "Sheffield United", "Tottenham Hotspur", "West Ham United", "Wolverhampton Wanderers",
	},
	2025: {
		"Arsenal", "Aston Villa", "AFC Bournemouth", "Brentford", "Brighton & Hove Albion",
		"Chelsea", "Crystal Palace", "Everton", "Fulham", "Ipswich Town",
		"Leicester City", "Liverpool", "Manchester City", "Manchester United", "Newcastle United",
		"Nottingham Forest", "Southampton", "Tottenham Hotspur", "West Ham United", "Wolverhampton Wanderers",
	},
	2026: {
		"Arsenal", "Aston Villa", "AFC Bournemouth", "Brentford", "Brighton & Hove Albion",
		"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
		"Leeds United", "Liverpool", "Manchester City", "Manchester United", "Newcastle United",
		"Nottingham Forest", "Sunderland", "Tottenham Hotspur", "West Ham United", "Wolverhampton Wanderers",
	},
}

// Final Championship tables, in finishing order, for the seasons that fed
// promotions into the top-flight rosters above.
var lowerDivision = map[int][]string{
	2024: {
		"Leicester City", "Ipswich Town", "Leeds United", "Southampton", "West Bromwich Albion",
		"Norwich City", "Hull City", "Middlesbrough", "Coventry City", "Preston North End",
		"Bristol City", "Cardiff City", "Millwall", "Swansea City", "Watford",
		"Sunderland", "Stoke City", "Queens Park Rangers", "Blackburn Rovers", "Sheffield Wednesday",
		"Plymouth Argyle", "Birmingham City", "Huddersfield Town", "Rotherham United",
	},
	2025: {
		"Leeds United", "Burnley", "Sheffield United", "Sunderland", "Coventry City",
		"Bristol City", "Blackburn Rovers", "Millwall", "West Bromwich Albion", "Middlesbrough",
		"Swansea City", "Sheffield Wednesday", "Norwich City", "Watford", "Queens Park Rangers",
		"Portsmouth", "Oxford United", "Stoke City", "Derby County", "Preston North End",
		"Hull City", "Luton Town", "Plymouth Argyle", "Cardiff City",
	},
}

var ratings = map[string]float64{
	"Arsenal":                 88,
	"Aston Villa":             78,
	"AFC Bournemouth":         70,
	"Brentford":               70,
	"Brighton & Hove Albion":  73,
	"Burnley":                 58,
	"Chelsea":                 80,
	"Crystal Palace":          70,
	"Everton":                 66,
	"Fulham":                  69,
	"Ipswich Town":            57,
	"Leeds United":            62,
	"Leicester City":          58,
	"Liverpool":               90,
	"Luton Town":              55,
	"Manchester City":         90,
	"Manchester United":       72,
	"Newcastle United":        79,
	"Nottingham Forest":       70,
	"Sheffield United":        52,
	"Southampton":             50,
	"Sunderland":              60,
	"Tottenham Hotspur":       74,
	"West Ham United":         69,
	"Wolverhampton Wanderers": 64,
}

const defaultRating = 60

func rating(team string) float64 {
	if r, ok := ratings[team]; ok {
		return r
	}
	return defaultRating
}

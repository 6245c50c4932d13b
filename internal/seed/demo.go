// Package seed holds the demo board shown on a fresh install.
package seed

import (
	"context"
	"time"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/service"
	"github.com/rs/zerolog"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// Demo returns fresh copies of the demo news items and their comments.
// Statuses are left for the news service to derive from the tallies.
func Demo() ([]*models.NewsItem, map[string][]*models.Comment) {
	news := []*models.NewsItem{
		{
			ID:           "news_001",
			Topic:        "Scientists identify a new coronavirus variant that spreads faster but causes milder illness",
			ShortDetail:  "An international team reports a variant named XB-25 with higher transmissibility and lower severity.",
			FullDetail:   "A study published in a medical research journal describes a variant named XB-25. Early data put its basic reproduction number about 30% above the dominant strain, while hospitalisation rates are markedly lower. Researchers followed more than 10,000 patients across 15 countries, most of whom reported cold-like symptoms. The World Health Organization has added the variant to its monitoring list and says existing vaccines still protect well.",
			Reporter:     "Global Health Watch",
			Date:         at("2024-01-15T14:30:00"),
			Image:        "https://images.unsplash.com/photo-1584036561566-baf8f5f1b144?w=800",
			FakeVotes:    23,
			NotFakeVotes: 156,
		},
		{
			ID:           "news_002",
			Topic:        "Alien spacecraft lands in Central Park, witnesses share photos",
			ShortDetail:  "Photos said to show a spacecraft landing in Central Park spread online; officials quickly deny it.",
			FullDetail:   "Posts claiming that an alien craft landed in Central Park began circulating last night with blurry photos and videos of lights above the park. Posters described a silver disc settling on the lawn. NASA and city officials denied any evidence of a visit and suggested a commercial drone show or an atmospheric optical effect. Police inspected the area and found nothing unusual.",
			Reporter:     "Unsolved Mysteries Explorer",
			Date:         at("2024-01-14T20:15:00"),
			Image:        "https://images.unsplash.com/photo-1446776653964-20c1d3a81b06?w=800",
			FakeVotes:    289,
			NotFakeVotes: 15,
		},
		{
			ID:           "news_003",
			Topic:        "New AI diagnoses 200 diseases in 30 seconds with 98% accuracy",
			ShortDetail:  "A start-up claims a medical AI that diagnoses many conditions quickly and accurately.",
			FullDetail:   "A start-up called MedTech AI says its system can diagnose more than 200 common diseases in 30 seconds with 98% accuracy by analysing symptoms, medical history and basic lab results. The company showed results on 10,000 test cases. Independent experts urge caution and ask for external validation, and regulators say the tool is under review.",
			Reporter:     "Tech Frontier Report",
			Date:         at("2024-01-13T09:45:00"),
			Image:        "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=800",
			FakeVotes:    67,
			NotFakeVotes: 89,
		},
		{
			ID:           "news_004",
			Topic:        "Study finds daily coffee linked to longer life and lower heart disease risk",
			ShortDetail:  "A large long-term study associates moderate coffee drinking with longer life and fewer heart problems.",
			FullDetail:   "A study following more than 500,000 participants for 20 years found that people drinking two to four cups of coffee a day had a 12 to 18% lower risk of death than non-drinkers, along with lower rates of cardiovascular disease and type 2 diabetes. The authors stress that correlation is not causation and that caffeine metabolism varies between people.",
			Reporter:     "Healthy Living Weekly",
			Date:         at("2024-01-12T11:20:00"),
			Image:        "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
			FakeVotes:    34,
			NotFakeVotes: 203,
		},
		{
			ID:           "news_005",
			Topic:        "Government secretly plans tracking chips in drinking water",
			ShortDetail:  "Online rumours claim microchips will be added to the public water supply; officials firmly deny it.",
			FullDetail:   "A conspiracy theory circulating on social media claims the government will add microscopic tracking chips to public drinking water to monitor the population. The posts cite unnamed sources and internal documents but offer no credible evidence. Water experts note that treatment plants filter out solid particles, and several independent fact-checkers rate the claim false.",
			Reporter:     "Truth Investigator",
			Date:         at("2024-01-11T16:50:00"),
			Image:        "https://images.unsplash.com/photo-1542736705-53e10c66d2e9?w=800",
			FakeVotes:    312,
			NotFakeVotes: 28,
		},
		{
			ID:           "news_006",
			Topic:        "Global warming may breach the 1.5°C threshold within five years",
			ShortDetail:  "The World Meteorological Organization says there is a 66% chance of temporarily exceeding 1.5°C before 2027.",
			FullDetail:   "According to the latest WMO report, there is at least a 66% chance that one of the next five years will be 1.5°C warmer than pre-industrial levels. Scientists stress this would not mean a permanent breach of the Paris Agreement limit, but warn that rising greenhouse gas levels and an expected El Niño make extreme weather more likely.",
			Reporter:     "Environment Watch",
			Date:         at("2024-01-10T08:15:00"),
			Image:        "https://images.unsplash.com/photo-1569163139394-de44cb54c05e?w=800",
			FakeVotes:    45,
			NotFakeVotes: 178,
		},
		{
			ID:           "news_007",
			Topic:        "Popular phone brand accused of listening to conversations to target ads",
			ShortDetail:  "A self-described security researcher claims a phone maker uses the microphone to personalise ads.",
			FullDetail:   "A blogger claiming to be a security researcher says reverse engineering shows that a well-known phone operating system secretly activates the microphone and uses conversations for advertising. The manufacturer denies the claim and points to explicit permission prompts. Independent experts have found no technical evidence so far, and data protection regulators say they are monitoring the case.",
			Reporter:     "Digital Privacy Guardian",
			Date:         at("2024-01-09T13:40:00"),
			Image:        "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800",
			FakeVotes:    134,
			NotFakeVotes: 98,
		},
		{
			ID:           "news_008",
			Topic:        "New battery charges in five minutes for 1,000 km of range",
			ShortDetail:  "Researchers announce a solid-state battery that could transform electric vehicles.",
			FullDetail:   "A university team reports a solid-state lithium battery that can take on enough charge for 1,000 km in five minutes. The solid electrolyte improves safety and energy density, and lab tests show stable performance over more than 1,000 cycles. Industry analysts expect five to ten years before mass production and point to cost and manufacturing hurdles.",
			Reporter:     "Innovation Daily",
			Date:         at("2024-01-08T10:05:00"),
			Image:        "https://images.unsplash.com/photo-1581094794329-c8112a89af12?w=800",
			FakeVotes:    56,
			NotFakeVotes: 145,
		},
	}

	comments := map[string][]*models.Comment{
		"news_001": {
			{
				ID:       "comment_001_1",
				NewsID:   "news_001",
				Vote:     models.VoteNotFake,
				Text:     "The report cites a peer-reviewed journal and its data matches what the research community currently knows.",
				Evidence: "https://www.nejm.org/doi/full/10.1056/NEJMoa2208343",
				Author:   "Medical researcher",
				Date:     at("2024-01-15T16:20:00"),
			},
			{
				ID:     "comment_001_2",
				NewsID: "news_001",
				Vote:   models.VoteFake,
				Text:   "I have never heard of this variant name before. It could be hype from a single outlet.",
				Author: "Cautious reader",
				Date:   at("2024-01-15T18:45:00"),
			},
		},
		"news_002": {
			{
				ID:       "comment_002_1",
				NewsID:   "news_002",
				Vote:     models.VoteFake,
				Text:     "The photos are clearly edited. The lighting is off, and mainstream media would be all over a real landing.",
				Evidence: "https://fotoforensics.com/analysis.php",
				Author:   "Image analyst",
				Date:     at("2024-01-14T21:30:00"),
			},
			{
				ID:     "comment_002_2",
				NewsID: "news_002",
				Vote:   models.VoteNotFake,
				Text:   "A friend was in the park that night and saw strange lights too. Someone is hiding something.",
				Author: "New York resident",
				Date:   at("2024-01-15T09:15:00"),
			},
		},
	}

	return news, comments
}

// Load seeds the demo board through svc when no news has been stored yet
func Load(ctx context.Context, svc service.NewsService, log zerolog.Logger) error {
	news, comments := Demo()
	seeded, err := svc.SeedIfEmpty(ctx, news, comments)
	if err != nil {
		return err
	}
	if !seeded {
		log.Info().Msg("News collection already present, skipping demo data")
	}
	return nil
}

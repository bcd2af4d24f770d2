package feeds

// Default returns the built-in source table used when no feeds config file
// is present.
func Default() *Registry {
	return newRegistry(
		map[string]map[string][]Source{
			"education": {
				"india": {
					{Name: "Indian Express Education", URL: "https://indianexpress.com/section/education/feed/"},
					{Name: "Hindustan Times Education", URL: "https://www.hindustantimes.com/feeds/rss/education/rssfeed.xml"},
					{Name: "Jagran Josh Education", URL: "https://www.jagranjosh.com/rss-feeds/rssfeed-education.xml"},
				},
				"global": {
					{Name: "Edutopia", URL: "https://www.edutopia.org/rss.xml"},
					{Name: "BBC Education", URL: "https://feeds.bbci.co.uk/news/education/rss.xml"},
					{Name: "Inside Higher Ed", URL: "https://www.insidehighered.com/rss/news"},
				},
			},
			"technology": {
				"india": {
					{Name: "Gadgets 360", URL: "https://www.gadgets360.com/rss/news"},
					{Name: "Hindustan Times Tech", URL: "https://tech.hindustantimes.com/rss/tech/news"},
					{Name: "Indian Express Technology", URL: "https://indianexpress.com/section/technology/feed/"},
				},
				"global": {
					{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
					{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
					{Name: "ZDNet", URL: "https://www.zdnet.com/news/rss.xml"},
				},
			},
			"science": {
				"india": {
					{Name: "The Hindu Science", URL: "https://www.thehindu.com/sci-tech/science/feeder/default.rss"},
					{Name: "Current Affairs", URL: "https://currentaffairs.adda247.com/feed/"},
					{Name: "Down To Earth Science", URL: "https://www.downtoearth.org.in/rss/science"},
				},
				"global": {
					{Name: "Science Daily", URL: "https://www.sciencedaily.com/rss/top/science.xml"},
					{Name: "Scientific American", URL: "https://rss.sciam.com/ScientificAmerican-News"},
					{Name: "Nature Science", URL: "https://www.nature.com/subjects/science.rss"},
				},
			},
		},
		[]Source{
			{Name: "Times of India Top Stories", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms"},
			{Name: "The Hindu National News", URL: "https://www.thehindu.com/news/national/feeder/default.rss"},
			{Name: "BBC World News", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		},
	)
}

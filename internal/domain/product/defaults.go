package product

// DefaultCatalog returns the verse boards a fresh storefront starts with.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Title:       "Psalm 23:1",
			VerseText:   "The Lord is my shepherd; I shall not want.",
			Category:    "Faith",
			Size:        "12 x 18 inches",
			Price:       1299,
			Description: "A beautiful verse board featuring the comforting words of Psalm 23:1, perfect for your home or as a gift.",
			Image:       "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=400&h=400&fit=crop",
			Rating:      5,
			Reviews: []Review{
				{ID: "1", Customer: "Sarah M.", Comment: "Beautiful board, perfect quality and very inspiring.", Rating: 5, Date: "2024-01-15"},
				{ID: "2", Customer: "John D.", Comment: "Great addition to our living room. Highly recommend!", Rating: 5, Date: "2024-01-20"},
			},
		},
		{
			ID:          "2",
			Title:       "Jeremiah 29:11",
			VerseText:   "For I know the plans I have for you, declares the Lord, plans to prosper you and not to harm you, plans to give you hope and a future.",
			Category:    "Prayer",
			Size:        "14 x 20 inches",
			Price:       1499,
			Description: "An inspiring verse board with Jeremiah 29:11, reminding you of God's perfect plans for your life.",
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
			Rating:      5,
			Reviews: []Review{
				{ID: "3", Customer: "Maria L.", Comment: "Absolutely love this verse board. The quality is exceptional!", Rating: 5, Date: "2024-02-01"},
			},
		},
		{
			ID:          "3",
			Title:       "John 3:16",
			VerseText:   "For God so loved the world that he gave his one and only Son, that whoever believes in him shall not perish but have eternal life.",
			Category:    "Living Room",
			Size:        "10 x 14 inches",
			Price:       999,
			Description: "The most famous verse in the Bible, beautifully displayed on this elegant verse board.",
			Image:       "https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=400&h=400&fit=crop",
			Rating:      4,
			Reviews:     []Review{},
		},
	}
}

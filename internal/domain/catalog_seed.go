package domain

// SeedCatalog returns the initial predefined-tag catalog. The storage layer
// upserts these on startup; tests use them directly.
func SeedCatalog() []CatalogTag {
	return []CatalogTag{
		{Name: "OpenAI", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 10.0},
		{Name: "Google", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 9.0},
		{Name: "Microsoft", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 9.0},
		{Name: "Apple", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 9.0},
		{Name: "Meta", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 8.0},
		{Name: "Anthropic", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 9.0},
		{Name: "NVIDIA", Category: CategoryCompany, ParentGroup: "ai_tech", BaseReliability: 8.0},

		{Name: "言語AI", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 8.0},
		{Name: "画像生成AI", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 8.0},
		{Name: "音声認識", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 7.0},
		{Name: "機械学習", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 8.0},
		{Name: "マルチモーダル", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 7.0},
		{Name: "LLM", Category: CategoryTechnology, ParentGroup: "ai_tech", BaseReliability: 8.0},

		{Name: "新製品発表", Category: CategoryAnnouncement, ParentGroup: "general", BaseReliability: 8.0},
		{Name: "買収", Category: CategoryAnnouncement, ParentGroup: "general", BaseReliability: 8.0},
		{Name: "資金調達", Category: CategoryAnnouncement, ParentGroup: "general", BaseReliability: 7.0},
		{Name: "アップデート", Category: CategoryAnnouncement, ParentGroup: "general", BaseReliability: 6.0},

		{Name: "速報", Category: CategoryImportance, ParentGroup: "meta", BaseReliability: 7.0},
		{Name: "注目", Category: CategoryImportance, ParentGroup: "meta", BaseReliability: 5.0},

		{Name: "YouTube", Category: CategoryPlatform, ParentGroup: "platforms", BaseReliability: 7.0},
		{Name: "GitHub", Category: CategoryPlatform, ParentGroup: "platforms", BaseReliability: 7.0},
		{Name: "AWS", Category: CategoryPlatform, ParentGroup: "platforms", BaseReliability: 7.0},
	}
}

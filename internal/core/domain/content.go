package domain

import "github.com/shopspring/decimal"

// QuoteContent is free-form presentational material (briefing text, feature
// lists, timeline steps). It affects only rendering, never pricing; the
// maintenance/optional prices below are display figures the engine ignores.
type QuoteContent struct {
	Briefing         *ContentBriefing         `json:"briefing,omitempty"`
	Highlights       []ContentHighlight       `json:"highlights,omitempty"`
	Features         []ContentFeature         `json:"features,omitempty"`
	Timeline         []ContentTimelineStep    `json:"timeline,omitempty"`
	Maintenance      []ContentMaintenanceItem `json:"maintenance,omitempty"`
	OptionalFeatures []ContentOptionalFeature `json:"optionalFeatures,omitempty"`
}

type ContentBriefing struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ContentHighlight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContentFeature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContentTimelineStep struct {
	ID          string `json:"id"`
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

type ContentMaintenanceItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

type ContentOptionalFeature struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features,omitempty"`
}

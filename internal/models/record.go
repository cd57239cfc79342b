package models

import "time"

// TextRecord is one collected social-media post, exactly as the collector
// produced it. Records are immutable once collected.
type TextRecord struct {
	RawText   string    `json:"raw_text"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

// ClassifiedRecord pairs a record with its normalized text and sentiment.
type ClassifiedRecord struct {
	TextRecord
	CleanText string          `json:"clean_text"`
	Result    SentimentResult `json:"result"`
}

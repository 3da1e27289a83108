package model

import "time"

// ================ Config ================
type ResponsePromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"self-storage and collection service"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Stor-a-gentic"`
}

type KnowledgeConfig struct {
	RefreshSchedule string `envconfig:"KB_REFRESH_SCHEDULE" default:"@every 10m"`
}

type InquiryConfig struct {
	UserID  string        `envconfig:"INQUIRY_USER_ID" default:"guest"`
	Timeout time.Duration `envconfig:"INQUIRY_TIMEOUT" default:"10s"`
}

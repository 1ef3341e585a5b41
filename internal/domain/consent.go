package domain

// Consent holds GDPR metadata recorded alongside a submission. All fields are
// pointers: a nil field was never supplied and must not clobber a previously
// recorded value when merging.
type Consent struct {
	Given           *bool   `json:"given,omitempty"`
	Version         *string `json:"version,omitempty"`
	Timestamp       *string `json:"timestamp,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
	UserAgent       *string `json:"user_agent,omitempty"`
	BrowserLanguage *string `json:"browser_language,omitempty"`
}

// Merge overlays the supplied consent onto the existing record. Only fields
// present in incoming overwrite; absent fields keep their stored value.
func (c *Consent) Merge(incoming *Consent) {
	if incoming == nil {
		return
	}
	if incoming.Given != nil {
		c.Given = incoming.Given
	}
	if incoming.Version != nil {
		c.Version = incoming.Version
	}
	if incoming.Timestamp != nil {
		c.Timestamp = incoming.Timestamp
	}
	if incoming.Timezone != nil {
		c.Timezone = incoming.Timezone
	}
	if incoming.UserAgent != nil {
		c.UserAgent = incoming.UserAgent
	}
	if incoming.BrowserLanguage != nil {
		c.BrowserLanguage = incoming.BrowserLanguage
	}
}

// MergedConsent combines an existing record with an incoming one without
// mutating either. A nil existing record starts from empty.
func MergedConsent(existing, incoming *Consent) *Consent {
	if existing == nil && incoming == nil {
		return nil
	}
	merged := &Consent{}
	if existing != nil {
		*merged = *existing
	}
	merged.Merge(incoming)
	return merged
}

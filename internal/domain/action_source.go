package domain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ActionSource indica o canal em que a conversão aconteceu
type ActionSource string

const (
	ActionSourceEmail             ActionSource = "email"
	ActionSourceWebsite           ActionSource = "website"
	ActionSourceApp               ActionSource = "app"
	ActionSourcePhoneCall         ActionSource = "phone_call"
	ActionSourceChat              ActionSource = "chat"
	ActionSourcePhysicalStore     ActionSource = "physical_store"
	ActionSourceSystemGenerated   ActionSource = "system_generated"
	ActionSourceBusinessMessaging ActionSource = "business_messaging"
	ActionSourceOther             ActionSource = "other"
)

var actionSources = map[ActionSource]struct{}{
	ActionSourceEmail:             {},
	ActionSourceWebsite:           {},
	ActionSourceApp:               {},
	ActionSourcePhoneCall:         {},
	ActionSourceChat:              {},
	ActionSourcePhysicalStore:     {},
	ActionSourceSystemGenerated:   {},
	ActionSourceBusinessMessaging: {},
	ActionSourceOther:             {},
}

func (a ActionSource) IsValid() bool {
	_, ok := actionSources[a]
	return ok
}

func (a *ActionSource) UnmarshalJSON(data []byte) error {
	var raw string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("action_source deve ser uma string: %w", err)
	}

	source := ActionSource(raw)
	if !source.IsValid() {
		return fmt.Errorf("action_source inválido: %q", raw)
	}

	*a = source
	return nil
}

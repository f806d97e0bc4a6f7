package openai

import "github.com/BoualamHamza/InterviewSim/internal/llm"

// Register OpenAI provider on package import
func init() {
	llm.RegisterProvider("openai", func() (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}

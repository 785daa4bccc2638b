package service

import "zenith/models"

// builtinModels 系统内置模型目录，按名称幂等写入
var builtinModels = []models.AIModel{
	{
		Name:        "GPT-4",
		Provider:    "OpenAI",
		Description: "Advanced language model with improved reasoning",
		MaxTokens:   8192,
	},
	{
		Name:        "GPT-3.5 Turbo",
		Provider:    "OpenAI",
		Description: "Efficient language model optimized for chat",
		MaxTokens:   4096,
	},
	{
		Name:        "Claude 2",
		Provider:    "Anthropic",
		Description: "Helpful, harmless, and honest AI assistant",
		MaxTokens:   100000,
	},
	{
		Name:        "Llama 2",
		Provider:    "Meta",
		Description: "Open source large language model",
		MaxTokens:   4096,
	},
}

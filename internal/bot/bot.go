package bot

import (
	"context"
	"fmt"
	"log"
	"sync"

	"google.golang.org/genai"
)

// системная инструкция бота: персона, тон, ограничение длины
const systemInstruction = `Eres "KiotecaBot", un asistente virtual oficial de la UVEG (Universidad Virtual del Estado de Guanajuato).
Tu función es ayudar a los estudiantes respondiendo sus dudas académicas y administrativas en la red social "Kioteca".

Reglas:
1. Responde de manera concisa, amable y motivadora.
2. Si la pregunta es técnica (programación, matemáticas), da una explicación breve o un ejemplo.
3. Si la pregunta es administrativa (fechas, inscripciones), sugiere revisar el portal oficial UVEG.
4. Usa emojis ocasionalmente para ser amigable.
5. Mantén tus respuestas por debajo de 60 palabras para que encajen bien en un comentario de red social.`

// тексты для случаев, когда модель недоступна или не настроена; они
// показываются как обычный ответ бота, а не как сбой приложения
const (
	missingKeyAnswer = "Error de configuración: No se detectó la API Key."
	emptyAnswer      = "Lo siento, no pude procesar tu pregunta en este momento."
)

// DefaultModel - модель по умолчанию
const DefaultModel = "gemini-2.5-flash"

// Answerer - внешний отвечающий сервис: текстовый запрос, текстовый
// ответ либо ошибка. Ошибку решает показывать или нет вызывающий.
type Answerer interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// KiotecaBot - отвечающий сервис поверх genai. Клиент создается лениво
// при первом вопросе; отсутствие ключа - ошибка конфигурации, которая
// возвращается внутри ответа, а не поднимается наверх.
type KiotecaBot struct {
	apiKey string
	model  string

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

// New создает бота. Пустая модель заменяется на DefaultModel.
func New(apiKey, model string) *KiotecaBot {
	if model == "" {
		model = DefaultModel
	}
	return &KiotecaBot{apiKey: apiKey, model: model}
}

// Ask задает вопрос боту и возвращает текст ответа
func (b *KiotecaBot) Ask(ctx context.Context, prompt string) (string, error) {
	if b.apiKey == "" {
		log.Printf("bot: ключ API не задан")
		return missingKeyAnswer, nil
	}

	b.initOnce.Do(func() {
		b.client, b.initErr = genai.NewClient(ctx, &genai.ClientConfig{APIKey: b.apiKey})
	})
	if b.initErr != nil {
		return "", fmt.Errorf("не удалось создать клиента genai: %w", b.initErr)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	result, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("запрос к модели не удался: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return emptyAnswer, nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

package shorts

import (
	"fmt"

	"github.com/nickpending/psyquotes/internal/catalog"
)

const promptTemplate = `Vertical abstract background image (9:16 aspect ratio) for a psychology quote.
Theme: %s.
Visual keywords: %s.
Atmosphere: ethereal, psychological, deep, moody lighting, high contrast, artistic.
No text overlays in the generated image. High quality, photorealistic or 3d render style.`

// BuildPrompt returns the image prompt for q. It depends only on the
// category and visual id, so equal quotes always give equal prompts.
func BuildPrompt(q catalog.Quote) string {
	return fmt.Sprintf(promptTemplate, q.Category, q.VisualID)
}

// Progress messages shown while generating. Purely cosmetic.
const initialProgress = "Conectando con el inconsciente colectivo..."

var progressMessages = []string{
	"Tejiendo la narrativa visual...",
	"Interpretando arquetipos...",
	"Renderizando sueños...",
	"Sincronizando con la psique...",
}

// ErrorMessage is the single user-facing text for every generation failure
const ErrorMessage = "Ocurrió un error al generar el contenido."

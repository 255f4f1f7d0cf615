package lead

import "strings"

// Bot replies for the live chat.
const (
	ReplyDefault  = "¡Gracias por tu mensaje! Te responderemos muy pronto. Si es urgente, puedes llamarnos al +34 672 861 646."
	ReplyServices = "Ofrecemos diseño web, desarrollo a medida, SEO, y mantenimiento. ¿Qué tipo de proyecto tienes en mente?"
	ReplyPricing  = "Nuestros precios van desde 497€ para webs básicas hasta proyectos enterprise. ¿Te gustaría ver nuestra página de precios?"
	ReplyCall     = "¡Perfecto! Agenda una llamada gratuita en nuestra sección de contacto. Te contactaremos en menos de 24h."
)

// LiveChatWelcome opens the live chat window.
const LiveChatWelcome = "¡Hola! 👋 Bienvenido a PRIME WEB. ¿En qué podemos ayudarte hoy?"

var quickMessages = []string{
	"Hola, quiero información sobre sus servicios",
	"Me interesa crear una página web",
	"¿Cuánto cuesta una web profesional?",
	"Quiero agendar una llamada gratuita",
}

// QuickMessages returns the suggested openers shown under the chat input.
func QuickMessages() []string {
	return append([]string(nil), quickMessages...)
}

// keywordRules are checked in order; the first match wins.
var keywordRules = []struct {
	keywords []string
	reply    string
}{
	{[]string{"servicio", "información"}, ReplyServices},
	{[]string{"precio", "cuesta", "costo"}, ReplyPricing},
	{[]string{"llamada", "agendar", "cita"}, ReplyCall},
}

// Respond picks the canned reply for a visitor message by substring match.
func Respond(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return ReplyDefault
}

package site

import (
	"slices"
	"strings"
	"time"
)

// Plan is a pricing tier.
type Plan struct {
	Name          string
	Price         string
	OriginalPrice string
	Description   string
	Features      []string
	Popular       bool
}

// Extra is an add-on service sold on top of a plan.
type Extra struct {
	Name  string
	Price string
}

// FAQ is one question on the home page.
type FAQ struct {
	Question string
	Answer   string
}

// Position is an open role on the careers page.
type Position struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// Post is a blog entry. The body lives in content/blog/<slug>.md.
type Post struct {
	Slug      string
	Title     string
	Excerpt   string
	Category  string
	Published time.Time
	ReadTime  string
}

// Feature is a titled blurb used by the home and service sections.
type Feature struct {
	Title       string
	Description string
}

// Testimonial is a client quote.
type Testimonial struct {
	Name  string
	Role  string
	Quote string
}

// ServicePage backs one of the four service routes.
type ServicePage struct {
	Slug     string
	Title    string
	Headline string
	Summary  string
	Features []Feature
}

var plans = []Plan{
	{
		Name:        "Starter",
		Price:       "497€",
		Description: "Perfecto para emprendedores y pequeños negocios que necesitan presencia online.",
		Features: []string{
			"Sitio web de 1-3 páginas",
			"Diseño responsive",
			"Formulario de contacto",
			"SEO básico",
			"Integración WhatsApp",
			"Hosting primer año incluido",
			"Soporte 30 días",
		},
	},
	{
		Name:          "Profesional",
		Price:         "997€",
		OriginalPrice: "1.297€",
		Description:   "Ideal para negocios en crecimiento que buscan destacar y convertir más clientes.",
		Features: []string{
			"Sitio web de 5-7 páginas",
			"Diseño personalizado premium",
			"Animaciones avanzadas",
			"Blog integrado",
			"SEO avanzado",
			"Google Analytics",
			"Integración redes sociales",
			"Chat en vivo",
			"Calendario de citas",
			"Hosting 2 años incluido",
			"Soporte 90 días prioritario",
		},
		Popular: true,
	},
	{
		Name:        "Enterprise",
		Price:       "2.497€",
		Description: "Solución completa para empresas que necesitan funcionalidades avanzadas.",
		Features: []string{
			"Sitio web ilimitado de páginas",
			"Diseño a medida exclusivo",
			"E-commerce integrado",
			"Sistema de pagos",
			"Panel de administración",
			"Base de datos",
			"API personalizada",
			"Multi-idioma",
			"SEO premium + SEM inicial",
			"Capacitación personalizada",
			"Hosting 3 años incluido",
			"Soporte prioritario 1 año",
		},
	},
}

var extras = []Extra{
	{"Mantenimiento mensual", "desde 49€/mes"},
	{"SEO mensual", "desde 199€/mes"},
	{"Rediseño web", "desde 297€"},
	{"Página adicional", "97€"},
	{"Blog setup", "197€"},
	{"E-commerce básico", "desde 497€"},
}

var faqs = []FAQ{
	{
		"¿Cuánto tiempo toma desarrollar un sitio web?",
		"El tiempo de desarrollo varía según la complejidad del proyecto. Un sitio web básico puede estar listo en 2-3 semanas, mientras que proyectos más complejos pueden tomar 4-8 semanas. Durante la llamada de asesoría te daremos un estimado más preciso.",
	},
	{
		"¿Qué incluye el servicio de mantenimiento?",
		"Nuestro servicio de mantenimiento incluye actualizaciones de seguridad, copias de seguridad regulares, monitoreo del rendimiento, corrección de errores, y pequeñas actualizaciones de contenido. También ofrecemos soporte técnico prioritario.",
	},
	{
		"¿Ofrecen servicios de hosting?",
		"Sí, ofrecemos asesoría completa de hosting y podemos gestionar todo el proceso por ti. Te recomendamos las mejores opciones según las necesidades de tu proyecto y te ayudamos con la configuración inicial.",
	},
	{
		"¿Puedo ver el progreso de mi proyecto?",
		"¡Por supuesto! Mantenemos comunicación constante durante todo el proceso. Tendrás acceso a una versión de desarrollo donde podrás ver los avances y darnos feedback en tiempo real.",
	},
	{
		"¿Qué pasa si no me gusta el diseño inicial?",
		"Trabajamos contigo hasta que estés 100% satisfecho. Incluimos rondas de revisiones en todos nuestros paquetes y nos aseguramos de entender tu visión antes de comenzar el desarrollo.",
	},
	{
		"¿El sitio web será responsive?",
		"Absolutamente. Todos nuestros sitios son 100% responsive y se adaptan perfectamente a cualquier dispositivo: móviles, tablets y computadoras de escritorio.",
	},
}

var positions = []Position{
	{
		ID:          "frontend-dev",
		Title:       "Desarrollador Frontend",
		Department:  "Desarrollo",
		Type:        "Freelance / Tiempo parcial",
		Location:    "Remoto",
		Description: "Buscamos un desarrollador frontend apasionado por crear interfaces modernas y responsivas con React, TypeScript y Tailwind CSS.",
		Requirements: []string{
			"Experiencia con React y TypeScript",
			"Conocimiento de Tailwind CSS",
			"Portfolio con proyectos anteriores",
			"Capacidad de trabajo en equipo",
		},
	},
	{
		ID:          "ui-designer",
		Title:       "Diseñador UI/UX",
		Department:  "Diseño",
		Type:        "Freelance",
		Location:    "Remoto",
		Description: "Buscamos un diseñador creativo para crear experiencias de usuario excepcionales y diseños visuales impactantes.",
		Requirements: []string{
			"Experiencia con Figma o Adobe XD",
			"Portfolio de diseño web",
			"Conocimiento de principios UX",
			"Creatividad y atención al detalle",
		},
	},
	{
		ID:          "marketing",
		Title:       "Especialista en Marketing Digital",
		Department:  "Marketing",
		Type:        "Freelance",
		Location:    "Remoto",
		Description: "Buscamos un experto en marketing digital para ayudar a nuestros clientes a crecer su presencia online.",
		Requirements: []string{
			"Experiencia en SEO y SEM",
			"Conocimiento de redes sociales",
			"Habilidades analíticas",
			"Experiencia con Google Ads",
		},
	},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// posts are newest first.
var posts = []Post{
	{"tendencias-diseno-web-2024", "10 Tendencias de Diseño Web para 2024", "Descubre las últimas tendencias en diseño web que están definiendo el futuro digital. Desde el minimalismo hasta las experiencias inmersivas.", "Diseño Web", day(2024, time.January, 15), "5 min"},
	{"guia-seo-principiantes", "Guía Completa de SEO para Principiantes", "Todo lo que necesitas saber para posicionar tu sitio web en Google. Estrategias probadas y técnicas actualizadas para 2024.", "SEO", day(2024, time.January, 12), "8 min"},
	{"marketing-digital-estrategias", "Marketing Digital: Estrategias que Funcionan", "Aprende las estrategias de marketing digital más efectivas para hacer crecer tu negocio online y aumentar tus conversiones.", "Marketing Digital", day(2024, time.January, 8), "6 min"},
	{"optimizar-velocidad-web", "Cómo Optimizar la Velocidad de tu Web", "La velocidad de carga es crucial para el SEO y la experiencia del usuario. Te mostramos cómo mejorarla paso a paso.", "SEO", day(2024, time.January, 5), "7 min"},
	{"ux-ui-diseno-centrado-usuario", "UX/UI: Diseño Centrado en el Usuario", "Descubre cómo crear experiencias de usuario excepcionales que conviertan visitantes en clientes leales.", "Diseño Web", day(2024, time.January, 2), "6 min"},
	{"redes-sociales-empresas-2024", "Redes Sociales para Empresas: Guía 2024", "Maximiza tu presencia en redes sociales con estas estrategias probadas. Desde contenido hasta publicidad pagada.", "Marketing Digital", day(2023, time.December, 28), "9 min"},
}

var services = []Feature{
	{"Diseño Personalizado", "Creamos diseños únicos que reflejan la identidad de tu marca y cautivan a tu audiencia."},
	{"Desarrollo Web", "Sitios rápidos, seguros y optimizados con las últimas tecnologías del mercado."},
	{"Branding Digital", "Construimos una identidad visual coherente que destaca en el mundo digital."},
	{"SEO & Performance", "Optimización completa para que tu sitio aparezca en los primeros resultados."},
	{"Mantenimiento", "Actualizaciones continuas y mejoras para mantener tu sitio siempre al día."},
	{"Soporte 24/7", "Atención personalizada cuando la necesites, estamos contigo en cada paso."},
}

var process = []Feature{
	{"Discovery", "Analizamos tu negocio, competencia y objetivos para definir la estrategia perfecta."},
	{"Design", "Creamos wireframes y diseños visuales únicos que reflejan tu marca."},
	{"Development", "Desarrollamos tu sitio con tecnología moderna, rápido y optimizado."},
	{"Launch", "Lanzamos tu proyecto y te acompañamos con soporte continuo."},
}

var portfolio = []Feature{
	{"TechStart Pro", "Plataforma SaaS para gestión empresarial"},
	{"Boutique Elegance", "Tienda online de moda exclusiva"},
	{"FitLife App", "Aplicación web de entrenamiento personal"},
	{"Gastro Deluxe", "Web con reservas y menú digital"},
}

var testimonials = []Testimonial{
	{"María García", "CEO, TechStart", "Increíble trabajo. Superaron todas nuestras expectativas. El sitio web que nos crearon ha aumentado nuestras conversiones en un 150%."},
	{"Carlos Rodríguez", "Fundador, FitLife", "El equipo de PRIME WEB entendió perfectamente nuestra visión. El resultado es un sitio moderno, rápido y que nuestros usuarios aman."},
	{"Ana Martínez", "Directora, Boutique Elegance", "Profesionales de principio a fin. La asesoría que nos dieron fue invaluable y el soporte post-lanzamiento es excepcional."},
}

var servicePages = []ServicePage{
	{
		Slug:     "diseno-web",
		Title:    "Diseño Web",
		Headline: "Diseño web que convierte",
		Summary:  "Interfaces a medida que reflejan tu marca y guían a cada visitante hacia el contacto.",
		Features: []Feature{
			{"UI/UX Design", "Interfaces intuitivas y atractivas"},
			{"Branding", "Identidad visual coherente"},
			{"Responsive", "Perfecto en cualquier dispositivo"},
			{"Performance", "Carga ultrarrápida"},
		},
	},
	{
		Slug:     "desarrollo",
		Title:    "Desarrollo Web",
		Headline: "Desarrollo a medida",
		Summary:  "Webs, tiendas y aplicaciones construidas con tecnología moderna, seguras y fáciles de mantener.",
		Features: []Feature{
			{"Aplicaciones web", "Paneles, reservas y áreas privadas"},
			{"E-commerce", "Tiendas online con pagos integrados"},
			{"APIs", "Integraciones con tus herramientas"},
			{"Rendimiento", "Optimización de carga y Core Web Vitals"},
		},
	},
	{
		Slug:     "seo",
		Title:    "SEO",
		Headline: "Posicionamiento que se nota",
		Summary:  "Estrategia SEO técnica y de contenidos para que tus clientes te encuentren en Google.",
		Features: []Feature{
			{"Auditoría", "Análisis técnico completo de tu web"},
			{"Contenido", "Palabras clave y textos que posicionan"},
			{"SEO local", "Ficha de Google Business optimizada"},
			{"Informes", "Seguimiento mensual de resultados"},
		},
	},
	{
		Slug:     "mantenimiento",
		Title:    "Mantenimiento",
		Headline: "Tu web, siempre al día",
		Summary:  "Actualizaciones, copias de seguridad y soporte para que tu web nunca se detenga.",
		Features: []Feature{
			{"Seguridad", "Actualizaciones y monitorización"},
			{"Backups", "Copias de seguridad periódicas"},
			{"Soporte", "Respuesta prioritaria ante incidencias"},
			{"Mejoras", "Pequeños cambios de contenido incluidos"},
		},
	},
}

// Plans returns the pricing tiers.
func Plans() []Plan { return slices.Clone(plans) }

// Extras returns the add-on services.
func Extras() []Extra { return slices.Clone(extras) }

// FAQs returns the home page questions.
func FAQs() []FAQ { return slices.Clone(faqs) }

// Positions returns the open roles.
func Positions() []Position { return slices.Clone(positions) }

// PositionTitles returns the titles accepted by the careers form.
func PositionTitles() []string {
	titles := make([]string, len(positions))
	for i, p := range positions {
		titles[i] = p.Title
	}
	return titles
}

// Posts returns every blog post, newest first.
func Posts() []Post { return slices.Clone(posts) }

// PostBySlug finds a post.
func PostBySlug(slug string) (Post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// AllCategories is the blog filter value that matches every post.
const AllCategories = "Todos"

// SearchPosts filters posts by category and by a case-insensitive query on
// title or excerpt. Empty arguments match everything.
func SearchPosts(category, query string) []Post {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Post
	for _, p := range posts {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Excerpt), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PostCategories lists categories in first-seen order.
func PostCategories() []string {
	var out []string
	for _, p := range posts {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// Services returns the home page service blurbs.
func Services() []Feature { return slices.Clone(services) }

// Process returns the work process steps.
func Process() []Feature { return slices.Clone(process) }

// Portfolio returns the showcased projects.
func Portfolio() []Feature { return slices.Clone(portfolio) }

func Testimonials() []Testimonial { return slices.Clone(testimonials) }

// ServicePageBySlug finds the content behind a service route.
func ServicePageBySlug(slug string) (ServicePage, bool) {
	for _, s := range servicePages {
		if s.Slug == slug {
			return s, true
		}
	}
	return ServicePage{}, false
}

package site

// Page templates.
const (
	PageHome     = "home"
	PagePricing  = "pricing"
	PageCareers  = "careers"
	PageBlog     = "blog"
	PagePost     = "post"
	PageLegal    = "legal"
	PageService  = "service"
	PageNotFound = "notfound"
)

// Route maps a public path to the template that renders it. Key names the
// markdown document or service entry behind legal and service pages.
type Route struct {
	Path  string
	Page  string
	Title string
	Key   string
}

var routeTable = []Route{
	{Path: "/", Page: PageHome, Title: "Diseño y desarrollo web profesional"},
	{Path: "/precios", Page: PagePricing, Title: "Precios"},
	{Path: "/trabaja-con-nosotros", Page: PageCareers, Title: "Trabaja con Nosotros"},
	{Path: "/blog", Page: PageBlog, Title: "Blog"},
	{Path: "/privacidad", Page: PageLegal, Title: "Política de Privacidad", Key: "privacidad"},
	{Path: "/terminos", Page: PageLegal, Title: "Términos y Condiciones", Key: "terminos"},
	{Path: "/cookies", Page: PageLegal, Title: "Política de Cookies", Key: "cookies"},
	{Path: "/diseno-web", Page: PageService, Title: "Diseño Web", Key: "diseno-web"},
	{Path: "/desarrollo", Page: PageService, Title: "Desarrollo Web", Key: "desarrollo"},
	{Path: "/seo", Page: PageService, Title: "SEO", Key: "seo"},
	{Path: "/mantenimiento", Page: PageService, Title: "Mantenimiento", Key: "mantenimiento"},
}

// Routes returns the fixed route table.
func Routes() []Route {
	out := make([]Route, len(routeTable))
	copy(out, routeTable)
	return out
}

// Lookup finds the route for an exact path.
func Lookup(path string) (Route, bool) {
	for _, r := range routeTable {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

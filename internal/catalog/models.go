package catalog

// Модели YAML-файла каталога. Цены хранятся строками и разбираются в decimal при загрузке.

type fileModel struct {
	Products     []productModel     `yaml:"products"`
	Testimonials []testimonialModel `yaml:"testimonials"`
	Questions    []questionModel    `yaml:"questions"`
}

type productModel struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Tagline      string   `yaml:"tagline"`
	Price        string   `yaml:"price"`
	MonthlyPrice string   `yaml:"monthly_price"`
	Rating       int      `yaml:"rating"`
	ReviewCount  int      `yaml:"review_count"`
	ImageURL     string   `yaml:"image_url"`
	Category     string   `yaml:"category"`
	Badges       []string `yaml:"badges"`
}

type testimonialModel struct {
	ID     string `yaml:"id"`
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
	Quote  string `yaml:"quote"`
	Rating int    `yaml:"rating"`
}

type questionModel struct {
	ID       string        `yaml:"id"`
	Question string        `yaml:"question"`
	Options  []optionModel `yaml:"options"`
}

type optionModel struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

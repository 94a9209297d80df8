package imgbb

type Config struct {
	APIKey  string `envconfig:"API_KEY" required:"true"`
	BaseURL string `envconfig:"BASE_URL" default:"https://api.imgbb.com/1/upload"`
	Timeout int    `envconfig:"TIMEOUT" default:"60"` // секунды на весь аплоад
}

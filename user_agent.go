package tdameritrade

import "golang.org/x/exp/rand"

var UserAgents = []string{
	// Chrome on Mac OS
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	// Firefox on Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:130.0) Gecko/20100101 Firefox/130.0",
}

func GetRandomUserAgent() string {
	return UserAgents[rand.Intn(len(UserAgents))]
}

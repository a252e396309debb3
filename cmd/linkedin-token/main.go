// Command linkedin-token walks through LinkedIn's OAuth consent screen and
// stores the resulting access token as LINKEDIN_ACCESS_TOKEN in the .env
// file that the server reads for syndication.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const tokenKey = "LINKEDIN_ACCESS_TOKEN"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	clientID := getEnv("LINKEDIN_CLIENT_ID", "")
	clientSecret := getEnv("LINKEDIN_CLIENT_SECRET", "")
	envFilePath := getEnv("ENV_FILE_PATH", ".env")
	if clientID == "" || clientSecret == "" {
		fmt.Println("LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET are required")
		os.Exit(1)
	}

	conf := oauthConfig(clientID, clientSecret, getEnv("LINKEDIN_REDIRECT_URI", "https://www.linkedin.com/developers/tools/oauth/redirect"))

	fmt.Println("1. Open this link and authorize the app:")
	fmt.Printf("\n%s\n\n", conf.AuthCodeURL("journal", oauth2.AccessTypeOffline))

	fmt.Print("2. Paste the 'code' from the redirect URL: ")
	code, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	code = strings.TrimSpace(code)
	if code == "" {
		fmt.Println("No code provided")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		fmt.Printf("Error exchanging code: %v\n", err)
		os.Exit(1)
	}

	content, err := os.ReadFile(envFilePath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error reading %s: %v\n", envFilePath, err)
		os.Exit(1)
	}
	updated := setEnvValue(string(content), tokenKey, token.AccessToken)
	if err := os.WriteFile(envFilePath, []byte(updated), 0o600); err != nil {
		fmt.Printf("Error writing %s: %v\n", envFilePath, err)
		os.Exit(1)
	}

	if !token.Expiry.IsZero() {
		fmt.Printf("Token expires %s\n", token.Expiry.Format(time.RFC1123))
	}
	fmt.Printf("Updated %s in %s\n", tokenKey, envFilePath)
}

func oauthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     linkedin.Endpoint,
		Scopes:       []string{"openid", "profile", "email", "w_member_social"},
	}
}

// setEnvValue replaces the key's line in a .env document, or appends one.
// Other lines, comments included, are kept as they are.
func setEnvValue(content, key, value string) string {
	line := fmt.Sprintf("%s=%s", key, value)
	if content == "" {
		return line + "\n"
	}

	lines := strings.Split(content, "\n")
	found := false
	for i, l := range lines {
		name, _, ok := strings.Cut(strings.TrimSpace(l), "=")
		if ok && strings.TrimSpace(strings.TrimPrefix(name, "export ")) == key {
			lines[i] = line
			found = true
		}
	}
	if !found {
		if lines[len(lines)-1] == "" {
			lines[len(lines)-1] = line
			lines = append(lines, "")
		} else {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/otp-grid/internal/config"
	"github.com/ytget/otp-grid/internal/imaging"
	"github.com/ytget/otp-grid/internal/model"
	"github.com/ytget/otp-grid/internal/store"
	"github.com/ytget/otp-grid/internal/thumbnail"
	"github.com/ytget/otp-grid/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.otp-grid"
	AppName = "OTP Grid"

	WindowWidth  = 800
	WindowHeight = 600

	// DemoEnv seeds a few sample tokens into an empty store when set to 1
	DemoEnv = "OTPGRID_DEMO"
)

func main() {
	// Log version information
	fmt.Printf("OTP Grid v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	if icon, err := ui.LoadLogoResource(); err == nil {
		myApp.SetIcon(icon)
	}

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	tokens := store.NewTokenStore(myApp.Preferences())
	if os.Getenv(DemoEnv) == "1" && tokens.Count() == 0 {
		seedDemoTokens(tokens)
	}

	images := imaging.NewService(settings.GetMaxParallelFetches(), settings.GetThumbnailCacheEntries())
	thumbs := thumbnail.NewPipeline(images, fyne.Do)

	// Create and setup UI
	tokensUI := ui.NewTokensUI(myWindow, myApp, tokens, thumbs)
	tokensUI.SetImageLimiter(images)

	// Show and run
	myWindow.ShowAndRun()
}

func seedDemoTokens(tokens *store.TokenStore) {
	demo := []*model.Token{
		{Issuer: "Example", Label: "alice@example.com", Kind: model.TokenKindTOTP},
		{Issuer: "Bank", Label: "checking", Kind: model.TokenKindHOTP, Locked: true},
		{Issuer: "Git Host", Label: "alice", Kind: model.TokenKindTOTP},
		{Issuer: "Mail", Label: "alice@mail.example", Kind: model.TokenKindTOTP},
		{Issuer: "VPN", Label: "corp", Kind: model.TokenKindHOTP},
	}
	for _, t := range demo {
		if _, err := tokens.Add(t); err != nil {
			log.Printf("Failed to seed demo token %s: %v", t.Issuer, err)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine"
)

// One-shot analyzer for manual triage: feed it a call, a message, or both,
// and it prints the composed alert. No storage involved.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	phonePtr := flag.String("phone", "", "Calling phone number to analyze")
	durationPtr := flag.Int("duration", 0, "Call duration in seconds")
	frequencyPtr := flag.Int("frequency", 1, "Calls from this number in the past 24h")
	unknownPtr := flag.Bool("unknown", true, "Number is not in contacts")
	timePtr := flag.String("time", "business", "Time bucket: night, morning, business, evening")
	messagePtr := flag.String("message", "", "Message text to analyze")
	senderPtr := flag.String("sender", "Unknown", "Message sender identifier")
	flag.Parse()

	if *phonePtr == "" && *messagePtr == "" {
		log.Fatal("❌ Error: provide -phone and/or -message.\nUsage: go run cmd/analyze/main.go -phone=+56912345678 -duration=8 -frequency=3 -time=night")
	}

	cfg := engine.DefaultConfig()
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			log.Fatalf("❌ Error loading engine config: %v", err)
		}
		cfg = loaded
	}

	eng, err := engine.New(cfg, nil, nil)
	if err != nil {
		log.Fatalf("❌ Error building risk engine: %v", err)
	}

	var call, sms *domain.RiskAssessment
	if *phonePtr != "" {
		call = eng.AnalyzeCall(domain.CallInput{
			PhoneNumber: *phonePtr,
			Duration:    *durationPtr,
			Frequency:   *frequencyPtr,
			Unknown:     *unknownPtr,
			TimeOfDay:   domain.TimeOfDay(*timePtr),
		})
	}
	if *messagePtr != "" {
		sms = eng.AnalyzeMessage(domain.MessageInput{
			Text:   *messagePtr,
			Sender: *senderPtr,
		})
	}

	overall := eng.Combine(call, sms)
	alert := eng.ComposeOverallAlert(overall)

	fmt.Printf("\n%s\n", alert.Title)
	fmt.Printf("Risk Score: %.2f/100 (%s)\n", alert.Score, alert.Level)
	fmt.Printf("%s\n", alert.Message)
	fmt.Printf("Recommended action: %s\n\n", alert.RecommendedAction)

	if len(overall.Findings) > 0 {
		fmt.Println("Findings:")
		for _, f := range overall.Findings {
			fmt.Printf("  - %s\n", f.Cause)
		}
	}
	if len(alert.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		fmt.Println("  - " + strings.Join(alert.Recommendations, "\n  - "))
	}
}

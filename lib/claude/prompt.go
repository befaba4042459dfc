package claude

import (
	"fmt"
	"log/slog"

	random "github.com/mazen160/go-random"
)

const SystemPrompt = "You are a helpful assistant that provides accurate, up-to-date JSON data about online platforms for making money."

// special aims; everything else is treated as a category name.
const (
	AimLatest  = "latest"
	AimPopular = "popular"
)

const batchSize = 20

const outputTemplate = `
        {
            "results": [
                {
                    "category": "<Category Name> (string)",
                    "cleaned_domain": "<Cleaned domain of the platform as unique identifier, without http:// or https://> (string)",
                    "name": "<Platform Name> (string)",
                    "description": "<Brief description of the platform> (string)",
                    "free_tier_details": "<Details about the free tier> (string)",
                    "url": "<The main URL of the platform> (string)",
                    "pricing_url": "<URL for pricing information> (string)",
                    "quick_start_url": "<URL for getting started quickly> (string)",
                    "key_features": "<Key features of the platform> (list of strings)",
                    "monetization_options": "<How to make money using the platform> (string)",
                    "beginner_friendly": "<A rating from 1 to 5 indicating how beginner-friendly the platform is> (int)",
                    "usefulness": "<A rating from 1 to 5 indicating the usefulness of the platform> (int)",
                    "importance": "<A rating from 1 to 5 indicating the importance of the platform> (int)",
                    "pros": "<A list of pros> (list of strings)",
                    "cons": "<A list of cons> (list of strings)",
                    "crawled_at": "%[1]s"
                },
                ...
            ]
        }
        Ensure all urls are accessible.
        Ensure the JSON is valid and concise, fact-checked and the data is accurate and up-to-date.
`

// PromptFor builds the sourcing prompt for one aim. The latest/popular
// aims sample a random rank window so repeated runs do not keep asking
// for the same platforms.
func PromptFor(aim, asOfDate string) string {
	template := fmt.Sprintf(outputTemplate, asOfDate)

	switch aim {
	case AimLatest:
		start := randomRankStart(100)
		return fmt.Sprintf(`
            Give me a raw JSON array of latest free platforms for making money online as of %s
            order by descending rank
            Just give me the platforms in rank %d to %d
            Big randomness is allowed, so don't be afraid to include some less popular ones
            The platforms should be free, popular and useful, and the data should be accurate and up-to-date.
            Output is pure raw JSON like this:
%s`, asOfDate, start, start+batchSize, template)
	case AimPopular:
		start := randomRankStart(500)
		return fmt.Sprintf(`
            Give me a raw JSON array of top popular free platforms for making money online as of %s in random category
            Just give me the platforms in rank %d to %d
            The platforms should be popular and useful, and the data should be accurate and up-to-date.
            Output is pure raw JSON like this:
%s`, asOfDate, start, start+batchSize, template)
	default:
		return fmt.Sprintf(`
            Give me a raw JSON array of top %d popular free platforms for making money online as of %s in category "%s"
            The platforms should be popular and useful, and the data should be accurate and up-to-date.
            Output is pure raw JSON like this:
%s`, batchSize, asOfDate, aim, template)
	}
}

func randomRankStart(total int) int {
	start, err := random.IntRange(1, total+1)
	if err != nil {
		slog.Warn("failed to sample rank window, starting from the top", "err", err)
		return 1
	}
	return start
}

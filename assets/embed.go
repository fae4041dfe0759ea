package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed wordlist.txt daily_patterns.json puzzle_data.json
var FS embed.FS

// WordList returns the embedded default validation word list.
func WordList() ([]string, error) {
	f, err := FS.Open("wordlist.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// DailyPatterns returns the embedded default pattern rotation (JSON).
func DailyPatterns() ([]byte, error) {
	return FS.ReadFile("daily_patterns.json")
}

// PuzzleData returns the embedded default puzzle metadata (JSON).
func PuzzleData() ([]byte, error) {
	return FS.ReadFile("puzzle_data.json")
}

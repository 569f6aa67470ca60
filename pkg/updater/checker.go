package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kpauljoseph/deckpress/pkg/logger"
	"github.com/kpauljoseph/deckpress/pkg/version"
)

const (
	githubVersionURL = "https://api.github.com/repos/kpauljoseph/deckpress/releases/latest"
	userAgent        = "Deckpress-Updater"
)

type Checker struct {
	client      *http.Client
	logger      *logger.Logger
	lastChecked time.Time
}

func NewChecker(logger *logger.Logger) *Checker {
	return &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Checker) CheckForUpdates() (*UpdateInfo, error) {
	// Rate limit checks
	if time.Since(c.lastChecked) < time.Hour {
		return nil, nil
	}
	c.lastChecked = time.Now()

	c.logger.Debug("Checking for updates...")

	req, err := http.NewRequest("GET", githubVersionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GitHub release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub release: %w", err)
	}

	currentVersion := strings.TrimPrefix(version.Version, "v")
	latestVersion := strings.TrimPrefix(release.TagName, "v")

	return &UpdateInfo{
		CurrentVersion: currentVersion,
		LatestVersion:  latestVersion,
		ReleaseNotes:   release.Body,
		DownloadURL:    release.HTMLURL,
		IsAvailable:    compareVersions(currentVersion, latestVersion) < 0,
	}, nil
}

// compareVersions returns:
//
//	-1 if v1 < v2
//	 0 if v1 == v2
//	 1 if v1 > v2
func compareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		if parts1[i] < parts2[i] {
			return -1
		}
		if parts1[i] > parts2[i] {
			return 1
		}
	}

	if len(parts1) < len(parts2) {
		return -1
	}
	if len(parts1) > len(parts2) {
		return 1
	}
	return 0
}

// Package config loads board credentials and server settings. Credentials
// live in an ini profile file so one deployment can serve several Monday.com
// workspaces; environment variables override the default profile.
package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// DefaultProfile is the section used when no profile is named.
const DefaultProfile = "default"

// Profile holds the credentials of one Monday.com workspace.
type Profile struct {
	Token             string
	DealsBoardID      string
	WorkOrdersBoardID string
}

// Registry resolves named credential profiles.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewRegistry loads the profile file at path.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile file: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewEnvRegistry builds a registry with a single default profile taken from
// MONDAY_API_TOKEN, DEALS_BOARD_ID and WO_BOARD_ID.
func NewEnvRegistry() Registry {
	cfg := ini.Empty()
	return &iniRegistry{cfg: cfg}
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	if len(profiles) == 0 {
		profiles = append(profiles, DefaultProfile)
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (Profile, error) {
	section := r.cfg.Section(name)

	profile := Profile{
		Token:             section.Key("token").String(),
		DealsBoardID:      section.Key("deals_board_id").String(),
		WorkOrdersBoardID: section.Key("wo_board_id").String(),
	}

	// Environment variables win over the file for the default profile.
	if name == DefaultProfile || name == ini.DefaultSection {
		if v := os.Getenv("MONDAY_API_TOKEN"); v != "" {
			profile.Token = v
		}
		if v := os.Getenv("DEALS_BOARD_ID"); v != "" {
			profile.DealsBoardID = v
		}
		if v := os.Getenv("WO_BOARD_ID"); v != "" {
			profile.WorkOrdersBoardID = v
		}
	}

	if profile.Token == "" {
		return Profile{}, fmt.Errorf("profile %s has no API token", name)
	}
	if profile.DealsBoardID == "" || profile.WorkOrdersBoardID == "" {
		return Profile{}, fmt.Errorf("profile %s is missing board ids", name)
	}
	return profile, nil
}

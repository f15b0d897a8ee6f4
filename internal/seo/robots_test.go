// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestBuildRobots_Default(t *testing.T) {
	content := BuildRobots(RobotsConfig{SiteURL: "https://ciphercorp.com/"})

	if !strings.HasPrefix(content, "User-agent: *\n") {
		t.Error("BuildRobots() should start with 'User-agent: *'")
	}
	for _, path := range []string{"/admin", "/api"} {
		if !strings.Contains(content, "Disallow: "+path+"\n") {
			t.Errorf("BuildRobots() should disallow %q", path)
		}
	}
	if !strings.Contains(content, "Allow: /\n") {
		t.Error("BuildRobots() should contain 'Allow: /'")
	}
	if !strings.Contains(content, "Sitemap: https://ciphercorp.com/sitemap.xml") {
		t.Errorf("BuildRobots() sitemap reference missing:\n%s", content)
	}
}

func TestBuildRobots_DisallowAll(t *testing.T) {
	content := BuildRobots(RobotsConfig{
		SiteURL:     "http://localhost:8080",
		DisallowAll: true,
	})

	if content != "User-agent: *\nDisallow: /\n" {
		t.Errorf("BuildRobots() = %q", content)
	}
}

func TestBuildRobots_ExtraPaths(t *testing.T) {
	content := BuildRobots(RobotsConfig{DisallowPaths: []string{"/drafts"}})

	if !strings.Contains(content, "Disallow: /drafts\n") {
		t.Error("BuildRobots() should include extra disallow paths")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("BuildRobots() without a site URL should not reference a sitemap")
	}
}

func TestBuildRobots_DoesNotMutateDefaults(t *testing.T) {
	_ = BuildRobots(RobotsConfig{DisallowPaths: []string{"/one"}})
	content := BuildRobots(RobotsConfig{})

	if strings.Contains(content, "/one") {
		t.Error("extra paths leaked into a later build")
	}
}

package run

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap"
	"github.com/agentstation/partnermap/internal/cmd/application"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/reconcile"
	"github.com/agentstation/partnermap/pkg/save"
)

const (
	partnersPage  = `{"total":2,"results":{"assets":[{"contentJson":{"Partners":{"Partner":{"Id":1,"Name":"Acme"},"PartnerDisplay":{"Name":"Acme"}}}},{"contentJson":{"Partners":{"Partner":{"Id":2,"Name":"Beta"},"PartnerDisplay":{"Name":"Beta"}}}}]}}`
	solutionsPage = `{"total":2,"results":{"assets":[{"contentJson":{"Solutions":{"Solution":{"solutionid":"s1","solutionname":"Rocket","solutionpartner":1,"solutionpartnername":"acme"}}}},{"contentJson":{"Solutions":{"Solution":{"solutionid":"s2","solutionname":"Stray","solutionpartner":9,"solutionpartnername":"Nobody"}}}}]}}`
)

func fixture(_ context.Context, req collector.PageRequest) ([]byte, error) {
	if req.Dataset == "partners" {
		return []byte(partnersPage), nil
	}
	return []byte(solutionsPage), nil
}

func mockApp(dest application.Destination, quiet bool) *application.Mock {
	return &application.Mock{
		ClientFunc: func(opts ...partnermap.Option) (partnermap.Client, error) {
			return partnermap.New(append([]partnermap.Option{partnermap.WithFetcher(collector.FetcherFunc(fixture))}, opts...)...)
		},
		QuietFunc:        func() bool { return quiet },
		DestinationFunc:  func() application.Destination { return dest },
		OutputFormatFunc: func() string { return "" },
	}
}

func TestExecuteWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{}, false), &Flags{Mode: "name", File: path}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc reconcile.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Partners, 2)
	assert.Equal(t, "Acme", doc.Partners[0].Name)
	require.Len(t, doc.Partners[0].Solutions, 1)
	require.Len(t, doc.Unmatched, 1)
	assert.Equal(t, "Nobody", doc.Unmatched[0].GroupKey)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), path)
	assert.Contains(t, stderr.String(), "solutions matched")
	assert.Contains(t, stderr.String(), "✓ Run ")
}

func TestExecuteStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{}, true), &Flags{Stdout: true, FileFormat: "yaml"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "partnerName: Acme")
	assert.Contains(t, stdout.String(), "solutionId: s1")
	assert.Empty(t, stderr.String())
}

func TestExecuteUsesConfiguredDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configured.yaml")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{Path: path}, true), &Flags{}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "partners:\n")
}

func TestExecuteShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{}, true), &Flags{File: path, Show: true}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Acme")
	assert.Contains(t, stdout.String(), "Nobody")
}

func TestExecutePartner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{}, true), &Flags{File: path, Partner: "1"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Acme")
	assert.NotContains(t, stdout.String(), "Beta")
	assert.NotContains(t, stdout.String(), "Nobody")
}

func TestExecutePartnerNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), mockApp(application.Destination{}, true), &Flags{File: path, Partner: "Gamma"}, &stdout, &stderr)
	assert.True(t, errors.IsNotFound(err))

	// The document is saved before the lookup.
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestExecuteInvalidFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := mockApp(application.Destination{}, true)

	err := Execute(context.Background(), app, &Flags{Mode: "email"}, &stdout, &stderr)
	assert.True(t, errors.IsValidationError(err))

	err = Execute(context.Background(), app, &Flags{Stdout: true, FileFormat: "xml"}, &stdout, &stderr)
	assert.True(t, errors.IsValidationError(err))
}

func TestBuildSaveOptions(t *testing.T) {
	var w bytes.Buffer
	resolve := func(dest application.Destination, flags *Flags) *save.Options {
		t.Helper()
		opts, err := buildSaveOptions(dest, flags, reconcile.ModeID, &w)
		require.NoError(t, err)
		o := save.Defaults()
		o.Apply(opts...)
		return o
	}

	o := resolve(application.Destination{Path: "a.json", Bucket: "b"}, &Flags{})
	bucket, key := o.Object()
	assert.Equal(t, "b", bucket)
	assert.Equal(t, "a.json", key)

	o = resolve(application.Destination{Bucket: "b"}, &Flags{})
	_, key = o.Object()
	assert.Equal(t, partnermap.DefaultOutput(reconcile.ModeID), key)

	o = resolve(application.Destination{Path: "a.json", Bucket: "b"}, &Flags{Stdout: true})
	assert.NotNil(t, o.Writer())

	o = resolve(application.Destination{Path: "a.json", Format: "yaml"}, &Flags{File: "b.json"})
	assert.Equal(t, "b.json", o.Path())
	assert.Equal(t, save.FormatYAML, o.Format())

	o = resolve(application.Destination{}, &Flags{})
	assert.Empty(t, o.Path())
	assert.Nil(t, o.Writer())
}

func TestExecuteWarnsOnPartialListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	var stdout, stderr bytes.Buffer

	app := mockApp(application.Destination{}, false)
	app.ClientFunc = func(opts ...partnermap.Option) (partnermap.Client, error) {
		failing := collector.FetcherFunc(func(ctx context.Context, req collector.PageRequest) ([]byte, error) {
			if req.Dataset == "solutions" {
				return nil, errors.New("connection reset")
			}
			return fixture(ctx, req)
		})
		return partnermap.New(append([]partnermap.Option{partnermap.WithFetcher(failing)}, opts...)...)
	}

	require.NoError(t, Execute(context.Background(), app, &Flags{File: path}, &stdout, &stderr))

	assert.Contains(t, stderr.String(), "! solutions stopped early")
	assert.Contains(t, stderr.String(), "connection reset")
	assert.NotContains(t, stderr.String(), "✓ Run ")
	assert.FileExists(t, path)
}

package parse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleLOC = `file,line,type,commit,author,date,time,timezone,datetime,depth,length
index.html,1,html,abc123,Hector,2025-02-11,17:05:27,-08:00,2025-02-11T17:05:27-08:00,0,40
index.html,2,html,abc123,Hector,2025-02-11,17:05:27,-08:00,2025-02-11T17:05:27-08:00,1,40
style.css,1,css,def456,Hector,,,-08:00,,x,12
`

func TestParseLOC(t *testing.T) {
	t.Parallel()

	records, err := ParseLOC(strings.NewReader(sampleLOC))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	require.Equal(t, "index.html", first.File)
	require.Equal(t, 1, first.Line)
	require.Equal(t, "html", first.Type)
	require.Equal(t, "abc123", first.Commit)
	require.Equal(t, 40, first.Length)
	require.NotNil(t, first.Datetime)
	require.Equal(t, 17, first.Datetime.Hour())
	require.Equal(t, 5, first.Datetime.Minute())
	require.NotNil(t, first.Date)
	require.Equal(t, 0, first.Date.Hour())

	blank := records[2]
	require.Nil(t, blank.Date)
	require.Nil(t, blank.Datetime)
	require.Equal(t, 0, blank.Depth, "non-numeric depth coerces to zero")
	require.Equal(t, 12, blank.Length)
}

func TestParseLOCReorderedColumns(t *testing.T) {
	t.Parallel()

	body := "commit,type,line\nc1,js,3\n"
	records, err := ParseLOC(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "c1", records[0].Commit)
	require.Equal(t, "js", records[0].Type)
	require.Equal(t, 3, records[0].Line)
	require.Nil(t, records[0].Datetime)
}

func TestParseLOCEmpty(t *testing.T) {
	t.Parallel()

	records, err := ParseLOC(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestLoadLOCMissingFileDegrades(t *testing.T) {
	t.Parallel()

	records := LoadLOC(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Empty(t, records)
}

func TestLoadLOCFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLOC), 0o644))

	records := LoadLOC(context.Background(), path)
	require.Len(t, records, 3)
}

func TestLoadProjectsHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[
			{"title": "Robot Arm", "image": "arm.png", "year": 2023, "description": "Servo control"},
			{"title": "Site", "year": "2024", "url": "https://example.com"},
			{"title": "Draft"}
		]`))
	}))
	defer srv.Close()

	projects := LoadProjects(context.Background(), srv.URL+"/projects.json")
	require.Len(t, projects, 3)
	require.Equal(t, Year("2023"), projects[0].Year)
	require.Equal(t, Year("2024"), projects[1].Year)
	require.Equal(t, Year(""), projects[2].Year)
	require.Equal(t, []string{"Robot Arm", "arm.png", "2023", "Servo control"}, projects[0].Values())

	require.Empty(t, LoadProjects(context.Background(), srv.URL+"/broken"))
}

func TestLoadProjectsMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":`), 0o644))
	require.Empty(t, LoadProjects(context.Background(), path))
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"login":"octo","followers":3,"following":4,"public_repos":5,"public_gists":6}`))
	}))
	defer srv.Close()

	p := LoadProfile(context.Background(), srv.URL, "octo")
	require.NotNil(t, p)
	require.Equal(t, 3, p.Followers)
	require.Equal(t, 5, p.PublicRepos)

	require.Nil(t, LoadProfile(context.Background(), srv.URL, ""))
}

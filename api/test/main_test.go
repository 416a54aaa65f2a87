package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/cursoshub/elearning/api"
	"github.com/cursoshub/elearning/config"
	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

var dbHost string

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not connect to docker: %v\n", err)
		os.Exit(1)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=postgres",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start postgres: %v\n", err)
		os.Exit(1)
	}

	dbHost = "localhost:" + res.GetPort("5432/tcp")

	err = pool.Retry(func() error {
		db, err := database.Open(adminConfig())
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not ping postgres: %v\n", err)
		pool.Purge(res)
		os.Exit(1)
	}

	code := m.Run()

	pool.Purge(res)
	os.Exit(code)
}

func adminConfig() config.DB {
	return config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       dbHost,
		Name:       "postgres",
		DisableTLS: true,
	}
}

type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string
}

// NewTestEnv creates a dedicated migrated database named after the
// test and serves the full API mux on top of it.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	admin, err := database.Open(adminConfig())
	if err != nil {
		return nil, fmt.Errorf("opening admin connection: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("CREATE DATABASE " + name); err != nil {
		return nil, fmt.Errorf("creating database %s: %w", name, err)
	}

	cfg := adminConfig()
	cfg.Name = name

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening test database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	mux := api.APIMux(api.APIConfig{
		Log: log,
		DB:  db,
	})

	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	return &TestEnv{DB: db, Server: srv, URL: srv.URL}, nil
}

func (te *TestEnv) Client() *http.Client {
	return te.Server.Client()
}

// request sends body as JSON and decodes the response into out when
// out is non-nil, returning the status code.
func (te *TestEnv) request(t *testing.T, method string, path string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, te.URL+path, buf)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")

	w, err := te.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(w.Body)
		if err != nil {
			t.Fatal(err)
		}
		if len(raw) > 0 && w.StatusCode != http.StatusNoContent {
			if err := json.Unmarshal(raw, out); err != nil {
				t.Fatalf("unmarshaling response %s: %v", raw, err)
			}
		}
	}

	return w.StatusCode
}

// doRequest is the goroutine-safe variant of request: it returns the
// status code and reports transport failures as an error instead of
// failing the test, so racing workers can use it.
func (te *TestEnv) doRequest(method string, path string, body any) (int, error) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		buf = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, te.URL+path, buf)
	if err != nil {
		return 0, err
	}
	r.Header.Set("Content-Type", "application/json")

	w, err := te.Client().Do(r)
	if err != nil {
		return 0, err
	}
	defer w.Body.Close()
	io.Copy(io.Discard, w.Body)

	return w.StatusCode, nil
}

var userSeq = time.Now().UnixNano()

func (te *TestEnv) createUserOK(t *testing.T, name string) int {
	t.Helper()

	userSeq++
	body := map[string]any{
		"name":     name,
		"email":    fmt.Sprintf("%s-%d@test.com", name, userSeq),
		"password": "supersecret",
	}

	var u struct {
		ID int `json:"id"`
	}
	if code := te.request(t, http.MethodPost, "/users", body, &u); code != http.StatusCreated {
		t.Fatalf("creating user: status code %d", code)
	}

	return u.ID
}

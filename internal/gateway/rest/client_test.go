package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/project"
	"github.com/dvail/trackline/internal/gateway"
	"github.com/dvail/trackline/internal/gateway/rest"
	"github.com/stretchr/testify/require"
)

func TestClient_ListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/rest/v1/projects", r.URL.Path)
		require.Equal(t, "*", r.URL.Query().Get("select"))
		require.Equal(t, "id.desc", r.URL.Query().Get("order"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]project.Project{
			{ID: 2, ProjectName: "Beta"},
			{ID: 1, ProjectName: "Alpha"},
		})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	rows, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, []project.Project{
		{ID: 2, ProjectName: "Beta"},
		{ID: 1, ProjectName: "Alpha"},
	}, rows)
}

func TestClient_InsertProjectUsesRepresentation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/v1/projects", r.URL.Path)
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var payload []project.Input
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, []project.Input{{ProjectName: "Apollo"}}, payload)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]project.Project{{ID: 7, ProjectName: "Apollo"}})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	created, err := client.InsertProject(context.Background(), project.Input{ProjectName: "Apollo"})
	require.NoError(t, err)
	require.Equal(t, project.Project{ID: 7, ProjectName: "Apollo"}, created)
}

func TestClient_UpdateProjectFiltersByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "eq.5", r.URL.Query().Get("id"))
		json.NewEncoder(w).Encode([]project.Project{{ID: 5, ProjectName: "Renamed"}})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	updated, err := client.UpdateProject(context.Background(), 5, project.Input{ProjectName: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, project.Project{ID: 5, ProjectName: "Renamed"}, updated)
}

func TestClient_UpdateMatchingNothingIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]project.Project{})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	_, err := client.UpdateProject(context.Background(), 99, project.Input{ProjectName: "Ghost"})
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestClient_DeleteActivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/rest/v1/activities", r.URL.Path)
		require.Equal(t, "eq.9", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	require.NoError(t, client.DeleteActivity(context.Background(), 9))
}

func TestClient_ListActivitiesFiltersByProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		require.Equal(t, "eq.Apollo", r.URL.Query().Get("project_name"))
		json.NewEncoder(w).Encode([]activity.Activity{
			{ID: 1, ProjectName: "Apollo", ActivityName: "Design", Progress: "50"},
		})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	rows, err := client.ListActivities(context.Background(), "Apollo")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, activity.Progress("50"), rows[0].Progress)
}

func TestClient_SignInCapturesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "password", r.URL.Query().Get("grant_type"))

			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			require.Equal(t, "ana@example.com", creds["email"])

			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "session-token",
				"user": map[string]any{
					"id":    "u1",
					"email": "ana@example.com",
					"user_metadata": map[string]any{
						"display_name": "Ana",
					},
				},
			})
		case "/rest/v1/projects":
			require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"),
				"requests after sign-in carry the session token")
			json.NewEncoder(w).Encode([]project.Project{})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	sess, err := client.SignInWithPassword(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "session-token", sess.AccessToken)
	require.Equal(t, "u1", sess.User.ID)
	require.Equal(t, "Ana", sess.User.Name)

	_, err = client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestClient_SignInRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	_, err := client.SignInWithPassword(context.Background(), "ana@example.com", "wrong")
	require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
}

func TestClient_GetUserWithoutSession(t *testing.T) {
	client := rest.New("http://unreachable.invalid", "anon-key", nil)

	user, err := client.GetUser(context.Background())
	require.NoError(t, err, "no session means no request and no error")
	require.Nil(t, user)
}

func TestClient_GetUserExpiredSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "stale-token",
				"user":         map[string]any{"id": "u1", "email": "ana@example.com"},
			})
		case "/auth/v1/user":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "JWT expired"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	_, err := client.SignInWithPassword(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	user, err := client.GetUser(context.Background())
	require.NoError(t, err, "a rejected token reads as an absent identity")
	require.Nil(t, user)
}

func TestClient_IsAdmin(t *testing.T) {
	members := map[string]bool{"u1": true}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/admin_users", r.URL.Path)
		require.Equal(t, "user_id", r.URL.Query().Get("select"))

		id := r.URL.Query().Get("user_id")
		rows := []map[string]string{}
		if members[id[len("eq."):]] {
			rows = append(rows, map[string]string{"user_id": id})
		}
		json.NewEncoder(w).Encode(rows)
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)

	isAdmin, err := client.IsAdmin(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, isAdmin)

	isAdmin, err = client.IsAdmin(context.Background(), "u2")
	require.NoError(t, err)
	require.False(t, isAdmin)
}

func TestClient_ServerErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "relation does not exist"})
	}))
	defer server.Close()

	client := rest.New(server.URL, "anon-key", nil)
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "relation does not exist")
}

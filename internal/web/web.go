package web

import (
	"embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Joseda-hg/nexatask/internal/analytics"
	"github.com/Joseda-hg/nexatask/internal/db"
	"github.com/Joseda-hg/nexatask/internal/model"
)

//go:embed static/index.html
var staticFS embed.FS

type Server struct {
	tasks *db.TaskStore
	prefs *db.PreferenceStore
	log   *zap.SugaredLogger
}

func NewServer(tasks *db.TaskStore, prefs *db.PreferenceStore, log *zap.SugaredLogger) *Server {
	return &Server{tasks: tasks, prefs: prefs, log: log}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/", s.index)

	api := r.Group("/api")
	{
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.PUT("/tasks/:id", s.updateTask)
		api.DELETE("/tasks/:id", s.deleteTask)
		api.GET("/analytics", s.getAnalytics)
		api.GET("/preferences", s.getPreferences)
		api.PUT("/preferences", s.updatePreferences)
	}

	return r
}

func (s *Server) index(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "index unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context())
	if err != nil {
		s.heal(c, "list tasks", err)
		c.JSON(http.StatusOK, []model.Task{})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    *int64   `json:"priority"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), db.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		s.writeError(c, "create task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Completed   *bool    `json:"completed"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    int64    `json:"priority"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
}

func (s *Server) updateTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A body carrying the completed key is a completion toggle; anything
	// else replaces the descriptive fields wholesale. The store only ever
	// sees the variant that was chosen here.
	if req.Completed != nil {
		err = s.tasks.SetCompleted(c.Request.Context(), taskID,
			model.CompletionPatch{Completed: *req.Completed})
	} else {
		err = s.tasks.ReplaceFields(c.Request.Context(), taskID, model.FieldPatch{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Priority:    req.Priority,
			DueDate:     req.DueDate,
			Tags:        req.Tags,
		})
	}
	if err != nil {
		s.writeError(c, "update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deleteTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), taskID); err != nil {
		s.writeError(c, "delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getAnalytics(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context())
	if err != nil {
		s.heal(c, "load tasks for analytics", err)
		c.JSON(http.StatusOK, analytics.ZeroReport())
		return
	}
	c.JSON(http.StatusOK, analytics.Compute(tasks, time.Now().UTC()))
}

func (s *Server) getPreferences(c *gin.Context) {
	prefs, err := s.prefs.Get(c.Request.Context())
	if err != nil {
		// Intentional fallback: preferences reads never error visibly.
		s.log.Errorw("get preferences", "error", err)
		prefs = model.DefaultPreferences()
	}
	c.JSON(http.StatusOK, prefs)
}

type updatePreferencesRequest struct {
	Theme              string `json:"theme"`
	PrimaryColor       string `json:"primary_color"`
	ViewMode           string `json:"view_mode"`
	AnimationIntensity string `json:"animation_intensity"`
	FirstVisit         *bool  `json:"first_visit"`
}

func (s *Server) updatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	firstVisit := false
	if req.FirstVisit != nil {
		firstVisit = *req.FirstVisit
	}

	if err := s.prefs.Replace(c.Request.Context(), model.Preferences{
		Theme:              req.Theme,
		PrimaryColor:       req.PrimaryColor,
		ViewMode:           req.ViewMode,
		AnimationIntensity: req.AnimationIntensity,
		FirstVisit:         firstVisit,
	}); err != nil {
		s.writeError(c, "update preferences", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeError maps the store error taxonomy onto status codes: validation
// failures are the client's, everything else is a 500.
func (s *Server) writeError(c *gin.Context, op string, err error) {
	var invalid *db.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}
	s.log.Errorw(op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// heal logs a read-path storage failure and reapplies the schema so the next
// request sees a usable database. The current request degrades to an empty
// response instead of surfacing the error.
func (s *Server) heal(c *gin.Context, op string, err error) {
	s.log.Errorw(op, "error", err)
	if err := db.EnsureSchema(c.Request.Context(), s.tasks.DB); err != nil {
		s.log.Errorw("reinitialize schema", "error", err)
	}
}

// controllers/jobsite_controller.go
package controllers

import (
	"errors"
	"net/http"

	"toolify/app"
	"toolify/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobSiteController struct{ *Srv }

func NewJobSiteController(s *Srv) *JobSiteController { return &JobSiteController{Srv: s} }

// GET /api/jobsites
func (jc *JobSiteController) List(c *gin.Context) {
	sites, err := jc.Repo.ListJobSites(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"jobSites": sites})
}

// POST /api/jobsites（管理员）
func (jc *JobSiteController) Create(c *gin.Context) {
	var in struct {
		Name       string `json:"name" binding:"required"`
		Location   string `json:"location" binding:"required"`
		Supervisor string `json:"supervisor"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	js := &models.JobSite{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Location:   in.Location,
		Supervisor: in.Supervisor,
	}
	if err := jc.Repo.CreateJobSite(c.Request.Context(), js); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"jobSite": js})
}

// PATCH /api/jobsites/:id（管理员）
func (jc *JobSiteController) Update(c *gin.Context) {
	var in struct {
		Name       *string `json:"name"`
		Location   *string `json:"location"`
		Supervisor *string `json:"supervisor"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Supervisor != nil {
		fields["supervisor"] = *in.Supervisor
	}
	if err := jc.Repo.UpdateJobSite(c.Request.Context(), c.Param("id"), fields); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	js, err := jc.Repo.FindJobSiteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "job site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"jobSite": js})
}

// DELETE /api/jobsites/:id（管理员）
// 工具里只按名字引用工地，不做级联
func (jc *JobSiteController) Delete(c *gin.Context) {
	if err := jc.Repo.DeleteJobSite(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

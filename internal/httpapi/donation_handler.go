package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"rewear-be/internal/donation"
	"rewear-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// handleCreateCampaign accepts the multipart campaign form: text fields
// plus the mandatory campaign photo.
func (s *Server) handleCreateCampaign(c *gin.Context) {
	input := donation.CreateCampaignInput{
		OrganizationName:    c.PostForm("organization_name"),
		OrganizationLicense: c.PostForm("organization_license"),
		CampaignName:        c.PostForm("campaign_name"),
		DonationTarget:      c.PostForm("donation_target"),
		Description:         c.PostForm("description"),
	}

	claimed, _ := strconv.Atoi(c.PostForm("creator_id"))
	input.CreatorID = middleware.ResolveUserID(c, claimed)

	if v := c.PostForm("target_quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		input.TargetQuantity = qty
	}

	for field, dst := range map[string]*time.Time{
		"event_date":        &input.EventDate,
		"donation_deadline": &input.DonationDeadline,
	} {
		if v := c.PostForm(field); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				fail(c, http.StatusBadRequest, err)
				return
			}
			*dst = d
		}
	}

	if file, err := c.FormFile("photo"); err == nil {
		data, mimeType, err := readUpload(file)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		input.Photo = data
		input.PhotoName = file.Filename
		input.PhotoMimeType = mimeType
	}

	id, err := s.donations.CreateCampaign(c.Request.Context(), input)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"donation_id": id})
}

func (s *Server) handleListDonations(c *gin.Context) {
	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	donations, err := s.donations.List(c.Request.Context(), status)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"donations": donations})
}

func (s *Server) handleGetDonation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	d, err := s.donations.Get(c.Request.Context(), id)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"donation": d})
}

func (s *Server) handleListContributions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	contributions, err := s.donations.Contributions(c.Request.Context(), id)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"contributions": contributions})
}

func (s *Server) handleContribute(c *gin.Context) {
	donationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	input := donation.ContributeInput{DonationID: donationID}

	claimed, _ := strconv.Atoi(c.PostForm("donor_id"))
	input.DonorID = middleware.ResolveUserID(c, claimed)

	if v := c.PostForm("quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		input.Quantity = qty
	}

	if file, err := c.FormFile("photo"); err == nil {
		data, mimeType, err := readUpload(file)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		input.Photo = data
		input.PhotoName = file.Filename
		input.PhotoMimeType = mimeType
	}

	contribution, err := s.donations.Contribute(c.Request.Context(), input)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"contribution": contribution})
}

func (s *Server) handleSubmitReport(c *gin.Context) {
	donationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	input := donation.SubmitReportInput{
		DonationID:  donationID,
		Description: c.PostForm("description"),
	}

	claimed, _ := strconv.Atoi(c.PostForm("requester_id"))
	input.RequesterID = middleware.ResolveUserID(c, claimed)

	if file, err := c.FormFile("photo"); err == nil {
		data, mimeType, err := readUpload(file)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		input.Photo = data
		input.PhotoName = file.Filename
		input.PhotoMimeType = mimeType
	}

	if err := s.donations.SubmitReport(c.Request.Context(), input); err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"donation_id": donationID})
}

package controllers

import (
	"errors"

	"lms/middleware"
	"lms/services"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// ReportWatchTime records a watch-time tick and returns the resulting
// percentage plus completion flags.
func ReportWatchTime(svc *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedWatchTime").(*progressValidator.ReportWatchTimeRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		report, err := svc.ReportWatchTime(
			reqData.StudentID, reqData.CourseID, reqData.VideoID,
			*reqData.WatchedDuration, *reqData.TotalDuration,
		)
		if err != nil {
			return progressError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", report)
	}
}

// MarkComplete forces a video to 100% watched.
func MarkComplete(svc *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedMarkComplete").(*progressValidator.MarkCompleteRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		report, err := svc.MarkVideoComplete(reqData.StudentID, reqData.CourseID, reqData.VideoID)
		if err != nil {
			return progressError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Video marked as completed!", fiber.Map{
			"is_completed": report.CourseCompleted,
			"percentage":   report.Percentage,
		})
	}
}

// GetProgress returns the stored watch state, or zeros when the video has
// never been watched.
func GetProgress(svc *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedProgressQuery").(*progressValidator.ProgressQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		rec, err := svc.GetProgress(reqData.StudentID, reqData.CourseID, reqData.VideoID)
		if err != nil {
			return progressError(c, err)
		}

		// Unwatched video is an empty result, not an error
		if rec == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "No progress recorded yet.", fiber.Map{
				"watched_duration": 0,
				"percentage":       0,
			})
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"watched_duration": rec.WatchedDuration,
			"total_duration":   rec.TotalDuration,
			"percentage":       rec.Percentage,
		})
	}
}

// GetCompletedVideos lists the video ids the student has finished in a course.
func GetCompletedVideos(svc *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedCompletedQuery").(*progressValidator.CompletedQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		ids, err := svc.CompletedVideoIDs(reqData.StudentID, reqData.CourseID)
		if err != nil {
			return progressError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed videos fetched successfully!", fiber.Map{
			"completed_video_ids": ids,
		})
	}
}

func progressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDuration):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, services.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student not enrolled in this course!", nil)
	case errors.Is(err, services.ErrVideoNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found in this course!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
}

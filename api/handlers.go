package api

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
)

// Register wires up all API routes on the provided Echo instance. The /tasks
// group runs behind the authentication gate plus the authorization check.
func Register(e *echo.Echo, tasks TaskService, auth Authenticator, verifier TokenVerifier, resolver PrincipalResolver, logger *log.Logger) {
	e.POST("/auth/signup", signUp(auth))
	e.POST("/auth/login", login(auth))

	g := e.Group("/tasks", Authenticate(verifier, resolver), RequirePrincipal())
	g.GET("", listTasks(tasks, logger))
	g.GET("/:id", getTask(tasks))
	g.POST("", createTask(tasks))
	g.PUT("/:id", updateTask(tasks))
	g.DELETE("/:id", deleteTask(tasks))
	g.PATCH("/:id/complete", completeTask(tasks))

	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// decodeBody reads a size-limited JSON request body, rejecting unknown fields.
func decodeBody(c echo.Context, dst any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error onto the response envelope. Expected
// failures keep their message; internal faults are masked and logged.
func writeError(c echo.Context, err error) error {
	status := statusForKind(domain.KindOf(err))
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		return c.JSON(status, errorResponse("internal server error"))
	}
	return c.JSON(status, errorResponse(err.Error()))
}

func signUp(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse("invalid body"))
		}
		token, err := auth.SignUp(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(tokenResponse{Token: token}))
	}
}

func login(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse("invalid body"))
		}
		token, err := auth.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(tokenResponse{Token: token}))
	}
}

func listTasks(tasks TaskService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, "/tasks", logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		list, listErr := tasks.List(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if listErr != nil {
			metrics.SetErrorStage("storage")
			err = writeError(c, listErr)
			return err
		}
		metrics.SetTasksReturned(len(list))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, dataResponse(list))
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getTask(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := tasks.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(task))
	}
}

func createTask(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in domain.TaskInput
		if err := decodeBody(c, &in); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse("invalid body"))
		}
		task, err := tasks.Create(c.Request().Context(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, dataResponse(task))
	}
}

func updateTask(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in domain.TaskInput
		if err := decodeBody(c, &in); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse("invalid body"))
		}
		task, err := tasks.Update(c.Request().Context(), c.Param("id"), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(task))
	}
}

func deleteTask(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := tasks.Delete(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(task))
	}
}

func completeTask(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := tasks.Complete(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dataResponse(task))
	}
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/service"
	"suivi-chargements/internal/validation"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "suivi_session"

// CookieOptions control how the session cookie is issued. Production
// deployments run Secure with a cross-site policy; development stays Lax.
type CookieOptions struct {
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	commandes service.CommandeService
	stats     service.StatsService
	cookie    CookieOptions
	logger    *logrus.Logger
}

func NewHandler(auth service.AuthService, commandes service.CommandeService, stats service.StatsService, cookie CookieOptions, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:      auth,
		commandes: commandes,
		stats:     stats,
		cookie:    cookie,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
	}

	commandes := router.Group("/commandes", h.requireAuth())
	{
		commandes.GET("", h.listCommandes)
		commandes.GET("/:id", h.getCommande)
		commandes.POST("", h.createCommande)
		commandes.PUT("/:id", h.updateCommande)
		commandes.DELETE("/:id", h.deleteCommande)
	}

	router.GET("/stats", h.requireAuth(), h.getStats)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
}

// requireAuth rejects requests without a live session before any business
// logic runs. The bound user id is stored on the request context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		userID, err := h.auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			h.writeError(c, err)
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, h.cookie.MaxAge)
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	user, err := h.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) listCommandes(c *gin.Context) {
	commandes, err := h.commandes.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]CommandeResponse, len(commandes))
	for i := range commandes {
		resp[i] = commandeToResponse(commandes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCommande(c *gin.Context) {
	commande, err := h.commandes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commandeToResponse(*commande))
}

func (h *Handler) createCommande(c *gin.Context) {
	input, ok := h.bindCommande(c)
	if !ok {
		return
	}

	commande, err := h.commandes.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commandeToResponse(*commande))
}

func (h *Handler) updateCommande(c *gin.Context) {
	input, ok := h.bindCommande(c)
	if !ok {
		return
	}

	commande, err := h.commandes.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commandeToResponse(*commande))
}

func (h *Handler) deleteCommande(c *gin.Context) {
	deleted, err := h.commandes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Commande not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.stats.MonthlySummary(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// bindCommande decodes and validates an order payload, answering the client
// itself on failure.
func (h *Handler) bindCommande(c *gin.Context) (domain.CommandeInput, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return domain.CommandeInput{}, false
	}

	input, err := validation.ParseCommande(raw)
	if err != nil {
		h.writeError(c, err)
		return domain.CommandeInput{}, false
	}
	return input, true
}

// writeError is the single mapping from error variants to HTTP responses.
// Anything outside the known taxonomy is logged server-side and answered with
// a generic message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
	case errors.Is(err, domain.ErrCommandeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Commande not found"})
	default:
		h.logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", h.cookie.Secure, true)
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

type CommandeResponse struct {
	ID                string `json:"id"`
	Client            string `json:"client"`
	NumeroBonCommande string `json:"numeroBonCommande"`
	DateLivraison     string `json:"dateLivraison"`
	Depot             string `json:"depot"`
	Camion            string `json:"camion"`
	Quantite          string `json:"quantite"`
	Produit           string `json:"produit"`
	Fournisseur       string `json:"fournisseur"`
	DateChargement    string `json:"dateChargement"`
	Statut            string `json:"statut"`
	Transporteur      string `json:"transporteur"`
	Destination       string `json:"destination"`
	TauxTransport     string `json:"tauxTransport"`
	CreatedAt         string `json:"createdAt"`
}

func commandeToResponse(commande domain.Commande) CommandeResponse {
	return CommandeResponse{
		ID:                commande.ID,
		Client:            commande.Client,
		NumeroBonCommande: commande.NumeroBonCommande,
		DateLivraison:     commande.DateLivraison,
		Depot:             commande.Depot,
		Camion:            commande.Camion,
		Quantite:          commande.Quantite,
		Produit:           string(commande.Produit),
		Fournisseur:       commande.Fournisseur,
		DateChargement:    commande.DateChargement,
		Statut:            string(commande.Statut),
		Transporteur:      commande.Transporteur,
		Destination:       commande.Destination,
		TauxTransport:     commande.TauxTransport,
		CreatedAt:         commande.CreatedAt.Format(time.RFC3339),
	}
}

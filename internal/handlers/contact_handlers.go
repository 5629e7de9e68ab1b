package handlers

import (
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/auth"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/fuzzymatch"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Порог уверенности для однозначного совпадения и допуск для неоднозначных.
const (
	resolveConfidenceThreshold = 0.80
	resolveAmbiguityTolerance  = 0.05
)

func downstreamHeaders(c *gin.Context) clients.Headers {
	return clients.Headers{
		CorrelationID: middleware.CorrelationIDFrom(c),
		Token:         auth.TokenFrom(c),
	}
}

func proxyError(c *gin.Context, err error) {
	if apiErr, ok := err.(*clients.APIError); ok {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Body})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// GetContactsHandler проксирует список контактов из базового сервиса contacts.
func GetContactsHandler(contacts *clients.ContactsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		list, err := contacts.GetContacts(claims.Username, downstreamHeaders(c))
		if err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func AddContactHandler(contacts *clients.ContactsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contact models.Contact
		if err := c.ShouldBindJSON(&contact); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат контакта"})
			return
		}
		claims := auth.ClaimsFrom(c)
		if err := contacts.AddContact(claims.Username, &contact, downstreamHeaders(c)); err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusCreated, contact)
	}
}

func UpdateContactHandler(contacts *clients.ContactsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contact models.Contact
		if err := c.ShouldBindJSON(&contact); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат контакта"})
			return
		}
		claims := auth.ClaimsFrom(c)
		if err := contacts.UpdateContact(claims.Username, c.Param("label"), &contact, downstreamHeaders(c)); err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Контакт успешно обновлён"})
	}
}

func DeleteContactHandler(contacts *clients.ContactsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		if err := contacts.DeleteContact(claims.Username, c.Param("label"), downstreamHeaders(c)); err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Контакт успешно удалён"})
	}
}

// ResolveContactHandler находит контакт по имени нечётким совпадением.
func ResolveContactHandler(contacts *clients.ContactsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContactResolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат запроса"})
			return
		}

		claims := auth.ClaimsFrom(c)
		list, err := contacts.GetContacts(claims.Username, downstreamHeaders(c))
		if err != nil {
			proxyError(c, err)
			return
		}

		byLabel := make(map[string]models.Contact, len(list))
		labels := make([]string, 0, len(list))
		for _, contact := range list {
			byLabel[contact.Label] = contact
			labels = append(labels, contact.Label)
		}

		best := fuzzymatch.ExtractOne(req.Recipient, labels)
		if best == nil || best.Score <= resolveConfidenceThreshold {
			c.JSON(http.StatusOK, models.ContactResolveResponse{Status: "not_found"})
			return
		}

		within := fuzzymatch.ExtractWithin(req.Recipient, labels, resolveAmbiguityTolerance)
		if len(within) > 1 {
			matches := make([]models.Contact, 0, len(within))
			for _, m := range within {
				matches = append(matches, byLabel[m.Candidate])
			}
			c.JSON(http.StatusOK, models.ContactResolveResponse{
				Status:  "multiple_matches",
				Matches: matches,
			})
			return
		}

		resolved := byLabel[best.Candidate]
		log.Printf("Контакт %q распознан как %q (счёт %.2f)", req.Recipient, best.Candidate, best.Score)
		c.JSON(http.StatusOK, models.ContactResolveResponse{
			Status:      "success",
			AccountID:   resolved.AccountNum,
			ContactName: resolved.Label,
			Confidence:  best.Score,
		})
	}
}

// SuggestContactsHandler предлагает частых получателей, которых ещё нет в контактах.
func SuggestContactsHandler(contacts *clients.ContactsClient, history *clients.TransactionHistoryClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.Param("account_id")
		k, err := strconv.Atoi(c.DefaultQuery("k", "5"))
		if err != nil || k <= 0 {
			k = 5
		}

		claims := auth.ClaimsFrom(c)
		headers := downstreamHeaders(c)

		existing, err := contacts.GetContacts(claims.Username, headers)
		if err != nil {
			proxyError(c, err)
			return
		}
		known := make(map[string]bool, len(existing))
		for _, contact := range existing {
			known[contact.AccountNum] = true
		}

		txns, err := history.GetTransactions(accountID, headers)
		if err != nil {
			proxyError(c, err)
			return
		}

		counts := make(map[string]int)
		for _, t := range txns {
			if t.FromAcct == accountID && t.ToAcct != "" && !known[t.ToAcct] {
				counts[t.ToAcct]++
			}
		}

		suggestions := make([]models.ContactSuggestion, 0, len(counts))
		for acct, count := range counts {
			suggestions = append(suggestions, models.ContactSuggestion{AccountNum: acct, TransactionCount: count})
		}
		sort.Slice(suggestions, func(i, j int) bool {
			if suggestions[i].TransactionCount != suggestions[j].TransactionCount {
				return suggestions[i].TransactionCount > suggestions[j].TransactionCount
			}
			return suggestions[i].AccountNum < suggestions[j].AccountNum
		})
		if len(suggestions) > k {
			suggestions = suggestions[:k]
		}

		c.JSON(http.StatusOK, suggestions)
	}
}

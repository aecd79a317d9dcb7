package helper

import (
	"log"

	"shop_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetInfoCustomerFromToken lấy định danh khách từ token trong Locals, không có
// token hợp lệ thì coi như khách vãng lai (CustomerId = 0).
func GetInfoCustomerFromToken(c *fiber.Ctx) model.TokenClaim {
	var guestClaim = model.TokenClaim{
		CustomerId: 0,
		Username:   "",
	}

	u := c.Locals("user")
	if u == nil {
		return guestClaim
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		log.Println("Invalid token type → guest")
		return guestClaim
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		log.Println("Invalid claims type → guest")
		return guestClaim
	}

	claim := guestClaim
	if cid, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(cid)
	} else if aid, ok := claims["accountId"].(float64); ok {
		claim.CustomerId = uint(aid)
	}
	if username, ok := claims["username"].(string); ok {
		claim.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		claim.Email = email
	}

	return claim
}

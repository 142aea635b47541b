package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"vendorhub/config"
)

// SendOTPToMobile delivers the code through the configured SMS HTTP API.
// Delivery is best effort: callers log failures and never surface them to
// the client. When no SMS endpoint is configured the code is only logged.
func SendOTPToMobile(cfg *config.Config, mobileNo, code string) error {
	if cfg.SMSApiURL == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization": cfg.SMSApiKey,
			"numbers":       mobileNo,
			"message":       fmt.Sprintf("Your verification code is %s", code),
		}).
		Get(cfg.SMSApiURL)
	if err != nil {
		log.Printf("Error while sending OTP to %s: %v", mobileNo, err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobileNo)
	return nil
}

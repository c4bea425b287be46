package shop

import "encoding/json"

func jsonInto(raw string, dest any) error {
	return json.Unmarshal([]byte(raw), dest)
}

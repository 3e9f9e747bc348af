package parliament

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// apiID decodes ids the API sends either as numbers or as strings
type apiID int64

func (a *apiID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*a = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*a = apiID(n)
	return nil
}

type groupItem struct {
	Name string `json:"A_ns_CL_value"`
	ID   apiID  `json:"A_ns_C_id"`
}

type memberList struct {
	Members []memberItem `json:"colListMP"`
}

type memberItem struct {
	First  string `json:"A_ns_MPL_Name1"`
	Middle string `json:"A_ns_MPL_Name2"`
	Last   string `json:"A_ns_MPL_Name3"`
	From   string `json:"A_ns_MSP_date_F"`
	To     string `json:"A_ns_MSP_date_T"`
}

type sittingItem struct {
	ID   apiID  `json:"t_id"`
	Date string `json:"t_date"`
}

type transcriptItem struct {
	Body string `json:"Pl_Sten_body"`
}

var _ json.Unmarshaler = (*apiID)(nil)

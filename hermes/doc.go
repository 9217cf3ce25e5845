// Package hermes fetches a published address document over HTTP and parses
// it into an AddressRecord.
//
// Example:
//
//	rec, err := hermes.Fetch(ctx, hermes.WithTimeout(5*time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec.Name, rec.Address)
package hermes

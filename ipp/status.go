/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Status codes
 */

package ipp

import (
	"fmt"
)

// Status represents an IPP status code carried by response messages
type Status Code

// Status codes, as defined by RFC 8011
const (
	StatusOk                              Status = 0x0000 // successful-ok
	StatusOkIgnoredOrSubstituted          Status = 0x0001 // successful-ok-ignored-or-substituted-attributes
	StatusOkConflicting                   Status = 0x0002 // successful-ok-conflicting-attributes
	StatusErrorBadRequest                 Status = 0x0400 // client-error-bad-request
	StatusErrorForbidden                  Status = 0x0401 // client-error-forbidden
	StatusErrorNotAuthenticated           Status = 0x0402 // client-error-not-authenticated
	StatusErrorNotAuthorized              Status = 0x0403 // client-error-not-authorized
	StatusErrorNotPossible                Status = 0x0404 // client-error-not-possible
	StatusErrorTimeout                    Status = 0x0405 // client-error-timeout
	StatusErrorNotFound                   Status = 0x0406 // client-error-not-found
	StatusErrorGone                       Status = 0x0407 // client-error-gone
	StatusErrorRequestEntity              Status = 0x0408 // client-error-request-entity-too-large
	StatusErrorRequestValue               Status = 0x0409 // client-error-request-value-too-long
	StatusErrorDocumentFormatNotSupported Status = 0x040a // client-error-document-format-not-supported
	StatusErrorAttributesOrValues         Status = 0x040b // client-error-attributes-or-values-not-supported
	StatusErrorURIScheme                  Status = 0x040c // client-error-uri-scheme-not-supported
	StatusErrorCharset                    Status = 0x040d // client-error-charset-not-supported
	StatusErrorConflicting                Status = 0x040e // client-error-conflicting-attributes
	StatusErrorCompressionNotSupported    Status = 0x040f // client-error-compression-not-supported
	StatusErrorCompressionError           Status = 0x0410 // client-error-compression-error
	StatusErrorDocumentFormatError        Status = 0x0411 // client-error-document-format-error
	StatusErrorDocumentAccess             Status = 0x0412 // client-error-document-access-error
	StatusErrorInternal                   Status = 0x0500 // server-error-internal-error
	StatusErrorOperationNotSupported      Status = 0x0501 // server-error-operation-not-supported
	StatusErrorServiceUnavailable         Status = 0x0502 // server-error-service-unavailable
	StatusErrorVersionNotSupported        Status = 0x0503 // server-error-version-not-supported
	StatusErrorDeviceError                Status = 0x0504 // server-error-device-error
	StatusErrorTemporaryError             Status = 0x0505 // server-error-temporary-error
	StatusErrorNotAcceptingJobs           Status = 0x0506 // server-error-not-accepting-jobs
	StatusErrorBusy                       Status = 0x0507 // server-error-busy
	StatusErrorJobCanceled                Status = 0x0508 // server-error-job-canceled
	StatusErrorMultipleJobsNotSupported   Status = 0x0509 // server-error-multiple-document-jobs-not-supported
	StatusErrorPrinterIsDeactivated       Status = 0x050a // server-error-printer-is-deactivated
)

var statusNames = map[Status]string{
	StatusOk:                              "successful-ok",
	StatusOkIgnoredOrSubstituted:          "successful-ok-ignored-or-substituted-attributes",
	StatusOkConflicting:                   "successful-ok-conflicting-attributes",
	StatusErrorBadRequest:                 "client-error-bad-request",
	StatusErrorForbidden:                  "client-error-forbidden",
	StatusErrorNotAuthenticated:           "client-error-not-authenticated",
	StatusErrorNotAuthorized:              "client-error-not-authorized",
	StatusErrorNotPossible:                "client-error-not-possible",
	StatusErrorTimeout:                    "client-error-timeout",
	StatusErrorNotFound:                   "client-error-not-found",
	StatusErrorGone:                       "client-error-gone",
	StatusErrorRequestEntity:              "client-error-request-entity-too-large",
	StatusErrorRequestValue:               "client-error-request-value-too-long",
	StatusErrorDocumentFormatNotSupported: "client-error-document-format-not-supported",
	StatusErrorAttributesOrValues:         "client-error-attributes-or-values-not-supported",
	StatusErrorURIScheme:                  "client-error-uri-scheme-not-supported",
	StatusErrorCharset:                    "client-error-charset-not-supported",
	StatusErrorConflicting:                "client-error-conflicting-attributes",
	StatusErrorCompressionNotSupported:    "client-error-compression-not-supported",
	StatusErrorCompressionError:           "client-error-compression-error",
	StatusErrorDocumentFormatError:        "client-error-document-format-error",
	StatusErrorDocumentAccess:             "client-error-document-access-error",
	StatusErrorInternal:                   "server-error-internal-error",
	StatusErrorOperationNotSupported:      "server-error-operation-not-supported",
	StatusErrorServiceUnavailable:         "server-error-service-unavailable",
	StatusErrorVersionNotSupported:        "server-error-version-not-supported",
	StatusErrorDeviceError:                "server-error-device-error",
	StatusErrorTemporaryError:             "server-error-temporary-error",
	StatusErrorNotAcceptingJobs:           "server-error-not-accepting-jobs",
	StatusErrorBusy:                       "server-error-busy",
	StatusErrorJobCanceled:                "server-error-job-canceled",
	StatusErrorMultipleJobsNotSupported:   "server-error-multiple-document-jobs-not-supported",
	StatusErrorPrinterIsDeactivated:       "server-error-printer-is-deactivated",
}

// Successful reports whether the status code indicates success.
// RFC 8011 reserves the range 0x0000...0x00ff for successful completion.
func (status Status) Successful() bool {
	return status < 0x0100
}

// String returns the status keyword
func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}

	return fmt.Sprintf("0x%4.4x", uint16(status))
}

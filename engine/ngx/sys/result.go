package sys

import "fmt"

// Result mirrors NVSDK_NGX_Result.
type Result uint32

const (
	ResultSuccess Result = 0x1
	ResultFail    Result = 0xBAD00000

	ResultFailFeatureNotSupported        = ResultFail | 1
	ResultFailPlatformError              = ResultFail | 2
	ResultFailFeatureAlreadyExists       = ResultFail | 3
	ResultFailFeatureNotFound            = ResultFail | 4
	ResultFailInvalidParameter           = ResultFail | 5
	ResultFailScratchBufferTooSmall      = ResultFail | 6
	ResultFailNotInitialized             = ResultFail | 7
	ResultFailUnsupportedInputFormat     = ResultFail | 8
	ResultFailRWFlagMissing              = ResultFail | 9
	ResultFailMissingInput               = ResultFail | 10
	ResultFailUnableToInitializeFeature  = ResultFail | 11
	ResultFailOutOfDate                  = ResultFail | 12
	ResultFailOutOfGPUMemory             = ResultFail | 13
	ResultFailUnsupportedFormat          = ResultFail | 14
	ResultFailUnableToWriteToAppDataPath = ResultFail | 15
	ResultFailUnsupportedParameter       = ResultFail | 16
	ResultFailDenied                     = ResultFail | 17
	ResultFailNotImplemented             = ResultFail | 18
)

const resultMask Result = 0xFFF00000

// Succeeded follows NVSDK_NGX_SUCCEED: only the upper twelve bits are compared.
func (r Result) Succeeded() bool {
	return r&resultMask != ResultFail
}

func (r Result) Failed() bool {
	return !r.Succeeded()
}

// Err wraps a non-success code into a *ResultError naming the failed operation.
func (r Result) Err(op string) error {
	if r.Succeeded() {
		return nil
	}
	return &ResultError{Op: op, Code: r}
}

func (r Result) String() string {
	return ResultString(r, false)
}

func ResultString(result Result, getExtended bool) string {
	switch result {
	case ResultSuccess:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_Success", "NVSDK_NGX_Result_Success The call completed successfully.")
	case ResultFail:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_Fail", "NVSDK_NGX_Result_Fail The call failed for an unspecified reason.")
	case ResultFailFeatureNotSupported:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_FeatureNotSupported", "NVSDK_NGX_Result_FAIL_FeatureNotSupported Feature is not supported on current hardware.")
	case ResultFailPlatformError:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_PlatformError", "NVSDK_NGX_Result_FAIL_PlatformError Platform error, check the NGX log for more information.")
	case ResultFailFeatureAlreadyExists:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_FeatureAlreadyExists", "NVSDK_NGX_Result_FAIL_FeatureAlreadyExists Feature with given parameters already exists.")
	case ResultFailFeatureNotFound:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_FeatureNotFound", "NVSDK_NGX_Result_FAIL_FeatureNotFound Feature with provided handle does not exist.")
	case ResultFailInvalidParameter:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_InvalidParameter", "NVSDK_NGX_Result_FAIL_InvalidParameter Invalid parameter was provided.")
	case ResultFailScratchBufferTooSmall:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_ScratchBufferTooSmall", "NVSDK_NGX_Result_FAIL_ScratchBufferTooSmall Provided buffer is too small, use the size from GetScratchBufferSize.")
	case ResultFailNotInitialized:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_NotInitialized", "NVSDK_NGX_Result_FAIL_NotInitialized SDK was not initialized properly.")
	case ResultFailUnsupportedInputFormat:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_UnsupportedInputFormat", "NVSDK_NGX_Result_FAIL_UnsupportedInputFormat Unsupported format used for input or output buffers.")
	case ResultFailRWFlagMissing:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_RWFlagMissing", "NVSDK_NGX_Result_FAIL_RWFlagMissing Feature input or output needs the read-write access flag.")
	case ResultFailMissingInput:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_MissingInput", "NVSDK_NGX_Result_FAIL_MissingInput Required input was not provided.")
	case ResultFailUnableToInitializeFeature:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_UnableToInitializeFeature", "NVSDK_NGX_Result_FAIL_UnableToInitializeFeature Feature is not available on the system.")
	case ResultFailOutOfDate:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_OutOfDate", "NVSDK_NGX_Result_FAIL_OutOfDate NGX system libraries are old and need an update.")
	case ResultFailOutOfGPUMemory:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_OutOfGPUMemory", "NVSDK_NGX_Result_FAIL_OutOfGPUMemory Feature requires more GPU memory than is available.")
	case ResultFailUnsupportedFormat:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_UnsupportedFormat", "NVSDK_NGX_Result_FAIL_UnsupportedFormat Format used in input buffer(s) is not supported by the feature.")
	case ResultFailUnableToWriteToAppDataPath:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_UnableToWriteToAppDataPath", "NVSDK_NGX_Result_FAIL_UnableToWriteToAppDataPath Path provided in InApplicationDataPath cannot be written to.")
	case ResultFailUnsupportedParameter:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_UnsupportedParameter", "NVSDK_NGX_Result_FAIL_UnsupportedParameter Unsupported parameter was provided.")
	case ResultFailDenied:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_Denied", "NVSDK_NGX_Result_FAIL_Denied The feature or application was denied, contact NVIDIA for details.")
	case ResultFailNotImplemented:
		return ConditionalOperator(!getExtended, "NVSDK_NGX_Result_FAIL_NotImplemented", "NVSDK_NGX_Result_FAIL_NotImplemented The feature or functionality is not implemented.")
	}
	if result.Succeeded() {
		return fmt.Sprintf("NVSDK_NGX_Result(0x%08X)", uint32(result))
	}
	return fmt.Sprintf("NVSDK_NGX_Result_FAIL(0x%08X)", uint32(result))
}
